package repository

import (
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentAnswerRepository interface {
	WithTx(tx *gorm.DB) StudentAnswerRepository
	// InsertIfAbsent reports false when an answer for the same
	// (QuestionID, StudentID) already exists.
	InsertIfAbsent(answer *model.StudentAnswer) (bool, error)
	FindByID(id string) (*model.StudentAnswer, error)
	FindByQuestionID(questionID string) ([]model.StudentAnswer, error)
	FindByExamAndStudent(examID uint, studentID string) ([]model.StudentAnswer, error)
	UpdateGrade(id string, grade int, method model.GradingMethod, feedback *string) error
	DeleteByQuestionID(questionID string) error
	DeleteByClassExamIDs(classExamIDs []uint) error
}

type studentAnswerRepository struct {
	db *gorm.DB
}

func NewStudentAnswerRepository(db *gorm.DB) StudentAnswerRepository {
	return &studentAnswerRepository{db: db}
}

func (r *studentAnswerRepository) WithTx(tx *gorm.DB) StudentAnswerRepository {
	return &studentAnswerRepository{db: tx}
}

func (r *studentAnswerRepository) InsertIfAbsent(answer *model.StudentAnswer) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question_id"}, {Name: "student_id"}},
		DoNothing: true,
	}).Create(answer)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *studentAnswerRepository) FindByID(id string) (*model.StudentAnswer, error) {
	var answer model.StudentAnswer
	if err := r.db.Where("id = ?", id).First(&answer).Error; err != nil {
		return nil, apperror.FromGorm(err, "student answer "+id)
	}
	return &answer, nil
}

func (r *studentAnswerRepository) FindByQuestionID(questionID string) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	if err := r.db.Where("question_id = ?", questionID).Order("submitted_date DESC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *studentAnswerRepository) FindByExamAndStudent(examID uint, studentID string) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	classExams := r.db.Model(&model.ClassExam{}).Select("id").Where("exam_id = ?", examID)
	err := r.db.
		Where("class_exam_id IN (?)", classExams).
		Where("student_id = ?", studentID).
		Order("submitted_date DESC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *studentAnswerRepository) UpdateGrade(id string, grade int, method model.GradingMethod, feedback *string) error {
	updates := map[string]any{
		"grade":          grade,
		"grading_method": method,
	}
	if feedback != nil {
		updates["feedback"] = *feedback
	}
	res := r.db.Model(&model.StudentAnswer{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("student answer %s not found", id)
	}
	return nil
}

func (r *studentAnswerRepository) DeleteByQuestionID(questionID string) error {
	return r.db.Where("question_id = ?", questionID).Delete(&model.StudentAnswer{}).Error
}

func (r *studentAnswerRepository) DeleteByClassExamIDs(classExamIDs []uint) error {
	if len(classExamIDs) == 0 {
		return nil
	}
	return r.db.Where("class_exam_id IN ?", classExamIDs).Delete(&model.StudentAnswer{}).Error
}
