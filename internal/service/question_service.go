package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	CreateQuestion(req dto.QuestionRequest) (*dto.QuestionResponse, error)
	CreateQuestions(reqs []dto.QuestionRequest) ([]dto.QuestionResponse, error)
	GetQuestion(id string) (*dto.QuestionResponse, error)
	GetQuestionsByExam(examID uint) ([]dto.QuestionResponse, error)
	GetQuestionsByClassExam(classExamID uint) ([]dto.QuestionResponse, error)
	UpdateQuestion(id string, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(id string) error
}

type questionService struct {
	repo          repository.QuestionRepository
	classExamRepo repository.ClassExamRepository
	answerRepo    repository.StudentAnswerRepository
	db            *gorm.DB
}

func NewQuestionService(
	repo repository.QuestionRepository,
	classExamRepo repository.ClassExamRepository,
	answerRepo repository.StudentAnswerRepository,
	db *gorm.DB,
) QuestionService {
	return &questionService{repo: repo, classExamRepo: classExamRepo, answerRepo: answerRepo, db: db}
}

func fieldsFromRequest(req dto.QuestionRequest) QuestionFields {
	return QuestionFields{
		QuestionType:  req.QuestionType,
		QuestionText:  req.QuestionText,
		Answer:        req.Answer,
		CorrectAnswer: req.CorrectAnswer,
		Options:       req.Options,
		IsTrue:        req.IsTrue,
		Pairs:         req.Pairs,
		ImageURL:      req.ImageURL,
	}
}

// buildQuestion validates req and returns the record to persist under id.
func buildQuestion(id string, req dto.QuestionRequest) (*model.Question, error) {
	qt, err := ValidateQuestion(fieldsFromRequest(req))
	if err != nil {
		return nil, err
	}

	timeLimit := req.TimeLimit
	if timeLimit <= 0 {
		timeLimit = model.DefaultTimeLimit
	}

	q := &model.Question{
		ID:            id,
		ClassExamID:   req.ClassExamID,
		QuestionType:  qt,
		QuestionText:  strings.TrimSpace(req.QuestionText),
		TimeLimit:     timeLimit,
		CorrectAnswer: textOrNil(req.CorrectAnswer),
		IsTrue:        req.IsTrue,
		ImageURL:      textOrNil(req.ImageURL),
	}
	if len(req.Options) > 0 {
		q.Options = model.StringList(req.Options)
	}
	if len(req.Pairs) > 0 {
		q.Pairs = model.PairList(req.Pairs)
	}
	return q, nil
}

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:            q.ID,
		ClassExamID:   q.ClassExamID,
		QuestionType:  string(q.QuestionType),
		QuestionText:  q.QuestionText,
		CorrectAnswer: q.CorrectAnswer,
		Options:       []string(q.Options),
		IsTrue:        q.IsTrue,
		Pairs:         []model.Pair(q.Pairs),
		ImageURL:      q.ImageURL,
		TimeLimit:     q.TimeLimit,
		CreatedAt:     q.CreatedAt,
	}
}

func toQuestionResponses(questions []model.Question) []dto.QuestionResponse {
	resps := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resps = append(resps, toQuestionResponse(&questions[i]))
	}
	return resps
}

func (s *questionService) CreateQuestion(req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	question, err := buildQuestion(uuid.NewString(), req)
	if err != nil {
		return nil, err
	}
	if _, err := s.classExamRepo.FindByID(req.ClassExamID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(question); err != nil {
		log.Error().Err(err).Uint("classExamId", req.ClassExamID).Msg("Failed to create question")
		return nil, err
	}
	log.Info().Str("questionId", question.ID).Str("type", string(question.QuestionType)).Msg("Question created")
	resp := toQuestionResponse(question)
	return &resp, nil
}

// CreateQuestions validates every payload before inserting any of them.
func (s *questionService) CreateQuestions(reqs []dto.QuestionRequest) ([]dto.QuestionResponse, error) {
	if len(reqs) == 0 {
		return nil, apperror.Validation("at least one question is required")
	}

	questions := make([]model.Question, 0, len(reqs))
	checked := make(map[uint]bool)
	for i, req := range reqs {
		q, err := buildQuestion(uuid.NewString(), req)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if !checked[req.ClassExamID] {
			if _, err := s.classExamRepo.FindByID(req.ClassExamID); err != nil {
				return nil, err
			}
			checked[req.ClassExamID] = true
		}
		questions = append(questions, *q)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).CreateBatch(questions)
	})
	if err != nil {
		log.Error().Err(err).Int("count", len(questions)).Msg("Batch question insert failed, rolled back")
		return nil, err
	}
	log.Info().Int("count", len(questions)).Msg("Questions created")
	return toQuestionResponses(questions), nil
}

func (s *questionService) GetQuestion(id string) (*dto.QuestionResponse, error) {
	q, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *questionService) GetQuestionsByExam(examID uint) ([]dto.QuestionResponse, error) {
	questions, err := s.repo.FindByExamID(examID)
	if err != nil {
		log.Error().Err(err).Uint("examId", examID).Msg("Failed to load questions for exam")
		return nil, err
	}
	return toQuestionResponses(questions), nil
}

func (s *questionService) GetQuestionsByClassExam(classExamID uint) ([]dto.QuestionResponse, error) {
	questions, err := s.repo.FindByClassExamID(classExamID)
	if err != nil {
		return nil, err
	}
	return toQuestionResponses(questions), nil
}

func (s *questionService) UpdateQuestion(id string, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	updated, err := buildQuestion(id, req)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.classExamRepo.FindByID(req.ClassExamID); err != nil {
		return nil, err
	}

	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(updated); err != nil {
		log.Error().Err(err).Str("questionId", id).Msg("Failed to update question")
		return nil, err
	}
	resp := toQuestionResponse(updated)
	return &resp, nil
}

// DeleteQuestion removes the question and every answer given to it.
func (s *questionService) DeleteQuestion(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).FindByID(id); err != nil {
			return err
		}
		if err := s.answerRepo.WithTx(tx).DeleteByQuestionID(id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(id)
	})
	if err != nil {
		log.Error().Err(err).Str("questionId", id).Msg("Failed to delete question")
		return err
	}
	return nil
}
