package repository

import (
	"errors"
	"fmt"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"gorm.io/gorm"
)

type GradeRepository interface {
	WithTx(tx *gorm.DB) GradeRepository
	Create(grade *model.Grade) error
	Update(grade *model.Grade) error
	FindByID(id uint) (*model.Grade, error)
	// FindByStudentAndExam returns nil, nil when no row exists yet.
	FindByStudentAndExam(studentID string, examID uint) (*model.Grade, error)
	FindByStudent(studentID string) ([]model.Grade, error)
	FindByExam(examID uint) ([]model.Grade, error)
	Delete(id uint) error
	DeleteByExamID(examID uint) error
}

type gradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) WithTx(tx *gorm.DB) GradeRepository {
	return &gradeRepository{db: tx}
}

func (r *gradeRepository) Create(grade *model.Grade) error {
	return r.db.Create(grade).Error
}

func (r *gradeRepository) Update(grade *model.Grade) error {
	return r.db.Save(grade).Error
}

func (r *gradeRepository) FindByID(id uint) (*model.Grade, error) {
	var grade model.Grade
	if err := r.db.First(&grade, id).Error; err != nil {
		return nil, apperror.FromGorm(err, fmt.Sprintf("grade %d", id))
	}
	return &grade, nil
}

func (r *gradeRepository) FindByStudentAndExam(studentID string, examID uint) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.Where("student_id = ? AND exam_id = ?", studentID, examID).Order("id ASC").First(&grade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) FindByStudent(studentID string) ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Where("student_id = ?", studentID).Order("id ASC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindByExam(examID uint) ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Where("exam_id = ?", examID).Order("student_id ASC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Grade{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("grade %d not found", id)
	}
	return nil
}

func (r *gradeRepository) DeleteByExamID(examID uint) error {
	return r.db.Where("exam_id = ?", examID).Delete(&model.Grade{}).Error
}
