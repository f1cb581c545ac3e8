package repository

import (
	"fmt"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	WithTx(tx *gorm.DB) ExamRepository
	Create(exam *model.Exam) error
	FindByID(id uint) (*model.Exam, error)
	FindAll() ([]model.Exam, error)
	Update(exam *model.Exam) error
	Delete(id uint) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) WithTx(tx *gorm.DB) ExamRepository {
	return &examRepository{db: tx}
}

func (r *examRepository) Create(exam *model.Exam) error {
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, apperror.FromGorm(err, fmt.Sprintf("exam %d", id))
	}
	return &exam, nil
}

func (r *examRepository) FindAll() ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.db.Order("id DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Exam{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("exam %d not found", id)
	}
	return nil
}
