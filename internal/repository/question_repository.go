package repository

import (
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	Create(question *model.Question) error
	CreateBatch(questions []model.Question) error
	FindByID(id string) (*model.Question, error)
	FindByIDs(ids []string) ([]model.Question, error)
	FindByClassExamID(classExamID uint) ([]model.Question, error)
	FindByExamID(examID uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id string) error
	DeleteByClassExamIDs(classExamIDs []uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) Create(question *model.Question) error {
	return apperror.FromGorm(r.db.Create(question).Error, "question")
}

func (r *questionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return apperror.FromGorm(r.db.Create(&questions).Error, "question")
}

func (r *questionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.Where("id = ?", id).First(&question).Error; err != nil {
		return nil, apperror.FromGorm(err, "question "+id)
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByClassExamID(classExamID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("class_exam_id = ?", classExamID).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByExamID(examID uint) ([]model.Question, error) {
	var questions []model.Question
	classExams := r.db.Model(&model.ClassExam{}).Select("id").Where("exam_id = ?", examID)
	if err := r.db.Where("class_exam_id IN (?)", classExams).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.Question{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("question %s not found", id)
	}
	return nil
}

func (r *questionRepository) DeleteByClassExamIDs(classExamIDs []uint) error {
	if len(classExamIDs) == 0 {
		return nil
	}
	return r.db.Where("class_exam_id IN ?", classExamIDs).Delete(&model.Question{}).Error
}
