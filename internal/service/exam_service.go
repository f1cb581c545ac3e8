package service

import (
	"strings"
	"time"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const examDateLayout = "2006-01-02"

type ExamService interface {
	CreateExam(req dto.ExamRequest) (*dto.ExamResponse, error)
	GetExam(id uint) (*dto.ExamResponse, error)
	ListExams() ([]dto.ExamResponse, error)
	UpdateExam(id uint, req dto.ExamRequest) (*dto.ExamResponse, error)
	DeleteExam(id uint) error
}

type examService struct {
	repo          repository.ExamRepository
	classExamRepo repository.ClassExamRepository
	questionRepo  repository.QuestionRepository
	answerRepo    repository.StudentAnswerRepository
	gradeRepo     repository.GradeRepository
	db            *gorm.DB
}

func NewExamService(
	repo repository.ExamRepository,
	classExamRepo repository.ClassExamRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.StudentAnswerRepository,
	gradeRepo repository.GradeRepository,
	db *gorm.DB,
) ExamService {
	return &examService{
		repo:          repo,
		classExamRepo: classExamRepo,
		questionRepo:  questionRepo,
		answerRepo:    answerRepo,
		gradeRepo:     gradeRepo,
		db:            db,
	}
}

func parseExamDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(examDateLayout, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, apperror.Validation("Date must be formatted YYYY-MM-DD")
	}
	return datatypes.Date(t), nil
}

func toExamResponse(e *model.Exam) dto.ExamResponse {
	return dto.ExamResponse{
		ID:          e.ID,
		Title:       e.Title,
		Date:        time.Time(e.Date).Format(examDateLayout),
		CourseName:  e.CourseName,
		Time:        e.Time,
		Description: e.Description,
	}
}

func applyExamRequest(e *model.Exam, req dto.ExamRequest) error {
	date, err := parseExamDate(req.Date)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperror.Validation("Title is required")
	}
	e.Title = strings.TrimSpace(req.Title)
	e.Date = date
	e.CourseName = strings.TrimSpace(req.CourseName)
	e.Time = strings.TrimSpace(req.Time)
	e.Description = textOrNil(req.Description)
	return nil
}

func (s *examService) CreateExam(req dto.ExamRequest) (*dto.ExamResponse, error) {
	var exam model.Exam
	if err := applyExamRequest(&exam, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(&exam); err != nil {
		log.Error().Err(err).Str("title", exam.Title).Msg("Failed to create exam")
		return nil, err
	}
	log.Info().Uint("examId", exam.ID).Msg("Exam created")
	resp := toExamResponse(&exam)
	return &resp, nil
}

func (s *examService) GetExam(id uint) (*dto.ExamResponse, error) {
	exam, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := toExamResponse(exam)
	return &resp, nil
}

func (s *examService) ListExams() ([]dto.ExamResponse, error) {
	exams, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	resps := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		resps = append(resps, toExamResponse(&exams[i]))
	}
	return resps, nil
}

func (s *examService) UpdateExam(id uint, req dto.ExamRequest) (*dto.ExamResponse, error) {
	exam, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := applyExamRequest(exam, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(exam); err != nil {
		log.Error().Err(err).Uint("examId", id).Msg("Failed to update exam")
		return nil, err
	}
	resp := toExamResponse(exam)
	return &resp, nil
}

// DeleteExam removes answers, questions, class exam links and grades of the
// exam before the exam itself.
func (s *examService) DeleteExam(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(id); err != nil {
			return err
		}
		classExamIDs, err := s.classExamRepo.WithTx(tx).IDsByExamID(id)
		if err != nil {
			return err
		}
		if err := deleteClassExamChains(tx, classExamIDs, s.answerRepo, s.questionRepo, s.classExamRepo); err != nil {
			return err
		}
		if err := s.gradeRepo.WithTx(tx).DeleteByExamID(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
	if err != nil {
		log.Error().Err(err).Uint("examId", id).Msg("Failed to delete exam")
		return err
	}
	log.Info().Uint("examId", id).Msg("Exam deleted")
	return nil
}
