package repository

import (
	"fmt"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"gorm.io/gorm"
)

type ClassExamRepository interface {
	WithTx(tx *gorm.DB) ClassExamRepository
	Create(classExam *model.ClassExam) error
	FindByID(id uint) (*model.ClassExam, error)
	FindByClassID(classID string) ([]model.ClassExam, error)
	FindByExamID(examID uint) ([]model.ClassExam, error)
	IDsByClassID(classID string) ([]uint, error)
	IDsByExamID(examID uint) ([]uint, error)
	DeleteByIDs(ids []uint) error
}

type classExamRepository struct {
	db *gorm.DB
}

func NewClassExamRepository(db *gorm.DB) ClassExamRepository {
	return &classExamRepository{db: db}
}

func (r *classExamRepository) WithTx(tx *gorm.DB) ClassExamRepository {
	return &classExamRepository{db: tx}
}

func (r *classExamRepository) Create(classExam *model.ClassExam) error {
	return r.db.Create(classExam).Error
}

func (r *classExamRepository) FindByID(id uint) (*model.ClassExam, error) {
	var classExam model.ClassExam
	if err := r.db.First(&classExam, id).Error; err != nil {
		return nil, apperror.FromGorm(err, fmt.Sprintf("class exam %d", id))
	}
	return &classExam, nil
}

func (r *classExamRepository) FindByClassID(classID string) ([]model.ClassExam, error) {
	var classExams []model.ClassExam
	if err := r.db.Where("class_id = ?", classID).Order("id ASC").Find(&classExams).Error; err != nil {
		return nil, err
	}
	return classExams, nil
}

func (r *classExamRepository) FindByExamID(examID uint) ([]model.ClassExam, error) {
	var classExams []model.ClassExam
	if err := r.db.Where("exam_id = ?", examID).Order("id ASC").Find(&classExams).Error; err != nil {
		return nil, err
	}
	return classExams, nil
}

func (r *classExamRepository) IDsByClassID(classID string) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.ClassExam{}).Where("class_id = ?", classID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *classExamRepository) IDsByExamID(examID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.ClassExam{}).Where("exam_id = ?", examID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *classExamRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&model.ClassExam{}).Error
}
