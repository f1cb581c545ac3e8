package service

import (
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ClassExamService interface {
	CreateClassExam(req dto.ClassExamRequest) (*dto.ClassExamResponse, error)
	GetClassExam(id uint) (*dto.ClassExamResponse, error)
	ListByClass(classID string) ([]dto.ClassExamResponse, error)
	ListByExam(examID uint) ([]dto.ClassExamResponse, error)
	DeleteClassExam(id uint) error
}

type classExamService struct {
	repo         repository.ClassExamRepository
	classRepo    repository.ClassRepository
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.StudentAnswerRepository
	db           *gorm.DB
}

func NewClassExamService(
	repo repository.ClassExamRepository,
	classRepo repository.ClassRepository,
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.StudentAnswerRepository,
	db *gorm.DB,
) ClassExamService {
	return &classExamService{
		repo:         repo,
		classRepo:    classRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		db:           db,
	}
}

func toClassExamResponses(classExams []model.ClassExam) []dto.ClassExamResponse {
	resps := make([]dto.ClassExamResponse, 0, len(classExams))
	for i := range classExams {
		var resp dto.ClassExamResponse
		copier.Copy(&resp, &classExams[i])
		resps = append(resps, resp)
	}
	return resps
}

func (s *classExamService) CreateClassExam(req dto.ClassExamRequest) (*dto.ClassExamResponse, error) {
	classID := strings.TrimSpace(req.ClassID)
	if _, err := s.classRepo.FindByID(classID); err != nil {
		return nil, err
	}
	if _, err := s.examRepo.FindByID(req.ExamID); err != nil {
		return nil, err
	}

	classExam := model.ClassExam{ClassID: classID, ExamID: req.ExamID}
	if err := s.repo.Create(&classExam); err != nil {
		log.Error().Err(err).Str("classId", classID).Uint("examId", req.ExamID).Msg("Failed to create class exam")
		return nil, err
	}
	var resp dto.ClassExamResponse
	copier.Copy(&resp, &classExam)
	return &resp, nil
}

func (s *classExamService) GetClassExam(id uint) (*dto.ClassExamResponse, error) {
	classExam, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	var resp dto.ClassExamResponse
	copier.Copy(&resp, classExam)
	return &resp, nil
}

func (s *classExamService) ListByClass(classID string) ([]dto.ClassExamResponse, error) {
	classExams, err := s.repo.FindByClassID(classID)
	if err != nil {
		return nil, err
	}
	return toClassExamResponses(classExams), nil
}

func (s *classExamService) ListByExam(examID uint) ([]dto.ClassExamResponse, error) {
	classExams, err := s.repo.FindByExamID(examID)
	if err != nil {
		return nil, err
	}
	return toClassExamResponses(classExams), nil
}

func (s *classExamService) DeleteClassExam(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).FindByID(id); err != nil {
			return err
		}
		return deleteClassExamChains(tx, []uint{id}, s.answerRepo, s.questionRepo, s.repo)
	})
	if err != nil {
		log.Error().Err(err).Uint("classExamId", id).Msg("Failed to delete class exam")
		return err
	}
	return nil
}
