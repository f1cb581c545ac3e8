package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/metrics"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AnswerSubmissionService interface {
	SubmitAnswers(req dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error)
	GetAnswer(id string) (*dto.StudentAnswerResponse, error)
	ListByExamAndStudent(examID uint, studentID string) ([]dto.StudentAnswerResponse, error)
	ListByQuestion(questionID string) ([]dto.StudentAnswerResponse, error)
}

type answerSubmissionService struct {
	examRepo      repository.ExamRepository
	classExamRepo repository.ClassExamRepository
	questionRepo  repository.QuestionRepository
	answerRepo    repository.StudentAnswerRepository
	db            *gorm.DB
	now           func() time.Time
}

func NewAnswerSubmissionService(
	examRepo repository.ExamRepository,
	classExamRepo repository.ClassExamRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.StudentAnswerRepository,
	db *gorm.DB,
) AnswerSubmissionService {
	return &answerSubmissionService{
		examRepo:      examRepo,
		classExamRepo: classExamRepo,
		questionRepo:  questionRepo,
		answerRepo:    answerRepo,
		db:            db,
		now:           time.Now,
	}
}

func toStudentAnswerResponse(a *model.StudentAnswer) dto.StudentAnswerResponse {
	resp := dto.StudentAnswerResponse{
		ID:             a.ID,
		QuestionID:     a.QuestionID,
		ClassExamID:    a.ClassExamID,
		StudentID:      a.StudentID,
		AnswerText:     a.AnswerText,
		SelectedOption: a.SelectedOption,
		IsTrue:         a.IsTrue,
		MatchingPairs:  []model.Pair(a.MatchingPairs),
		SubmittedDate:  a.SubmittedDate,
		Grade:          a.Grade,
		Feedback:       a.Feedback,
	}
	if a.GradingMethod != nil {
		m := string(*a.GradingMethod)
		resp.GradingMethod = &m
	}
	return resp
}

func toStudentAnswerResponses(answers []model.StudentAnswer) []dto.StudentAnswerResponse {
	resps := make([]dto.StudentAnswerResponse, 0, len(answers))
	for i := range answers {
		resps = append(resps, toStudentAnswerResponse(&answers[i]))
	}
	return resps
}

// validateSubmission runs every check before anything is written and returns
// the questions keyed by id.
func (s *answerSubmissionService) validateSubmission(req dto.SubmitAnswersRequest) (map[string]model.Question, error) {
	if strings.TrimSpace(req.StudentID) == "" {
		return nil, apperror.Validation("StudentId is required")
	}
	if len(req.Answers) == 0 {
		return nil, apperror.Validation("at least one answer is required")
	}

	ids := make([]string, 0, len(req.Answers))
	for i, a := range req.Answers {
		if strings.TrimSpace(a.QuestionID) == "" {
			return nil, apperror.Validation("answer %d: QuestionId is required", i+1)
		}
		if a.Grade != nil {
			if err := CheckGrade(*a.Grade); err != nil {
				return nil, err
			}
		}
		ids = append(ids, a.QuestionID)
	}

	if _, err := s.examRepo.FindByID(req.ExamID); err != nil {
		return nil, err
	}
	classExamIDs, err := s.classExamRepo.IDsByExamID(req.ExamID)
	if err != nil {
		return nil, err
	}
	inExam := make(map[uint]bool, len(classExamIDs))
	for _, id := range classExamIDs {
		inExam[id] = true
	}

	questions, err := s.questionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	for _, a := range req.Answers {
		q, ok := byID[a.QuestionID]
		if !ok || !inExam[q.ClassExamID] {
			return nil, apperror.NotFound("question %s not found in exam %d", a.QuestionID, req.ExamID)
		}
	}
	return byID, nil
}

// SubmitAnswers stores a sitting in one transaction. An answer that already
// exists for the same question and student is skipped, not overwritten.
func (s *answerSubmissionService) SubmitAnswers(req dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error) {
	questions, err := s.validateSubmission(req)
	if err != nil {
		log.Warn().Err(err).Uint("examId", req.ExamID).Str("studentId", req.StudentID).Msg("SubmitAnswers: rejected")
		return nil, err
	}

	submitted := s.now().UTC()
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		submitted = req.Timestamp.UTC()
	}
	studentID := strings.TrimSpace(req.StudentID)

	result := &dto.SubmitAnswersResponse{Skipped: []string{}}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.answerRepo.WithTx(tx)
		for _, item := range req.Answers {
			text := model.DefaultAnswerText
			if hasText(item.AnswerText) {
				text = *item.AnswerText
			}
			answer := &model.StudentAnswer{
				ID:             uuid.NewString(),
				QuestionID:     item.QuestionID,
				ClassExamID:    questions[item.QuestionID].ClassExamID,
				StudentID:      studentID,
				AnswerText:     text,
				SelectedOption: textOrNil(item.SelectedOption),
				IsTrue:         item.IsTrue,
				SubmittedDate:  submitted,
				Grade:          item.Grade,
			}
			if len(item.MatchingPairs) > 0 {
				answer.MatchingPairs = model.PairList(item.MatchingPairs)
			}
			if item.Grade != nil {
				m := model.GradingMethodExternal
				answer.GradingMethod = &m
			}

			inserted, err := repo.InsertIfAbsent(answer)
			if err != nil {
				return err
			}
			if !inserted {
				log.Info().Str("questionId", item.QuestionID).Str("studentId", studentID).Msg("SubmitAnswers: duplicate answer skipped")
				result.Skipped = append(result.Skipped, item.QuestionID)
				continue
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("examId", req.ExamID).Str("studentId", studentID).Msg("SubmitAnswers: transaction rolled back")
		return nil, err
	}

	metrics.AnswersSubmitted.WithLabelValues("inserted").Add(float64(result.Inserted))
	metrics.AnswersSubmitted.WithLabelValues("duplicate").Add(float64(len(result.Skipped)))
	log.Info().
		Uint("examId", req.ExamID).
		Str("studentId", studentID).
		Int("inserted", result.Inserted).
		Int("skipped", len(result.Skipped)).
		Msg("Answers submitted")
	return result, nil
}

func (s *answerSubmissionService) GetAnswer(id string) (*dto.StudentAnswerResponse, error) {
	answer, err := s.answerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := toStudentAnswerResponse(answer)
	return &resp, nil
}

func (s *answerSubmissionService) ListByExamAndStudent(examID uint, studentID string) ([]dto.StudentAnswerResponse, error) {
	answers, err := s.answerRepo.FindByExamAndStudent(examID, studentID)
	if err != nil {
		return nil, err
	}
	return toStudentAnswerResponses(answers), nil
}

func (s *answerSubmissionService) ListByQuestion(questionID string) ([]dto.StudentAnswerResponse, error) {
	answers, err := s.answerRepo.FindByQuestionID(questionID)
	if err != nil {
		return nil, err
	}
	return toStudentAnswerResponses(answers), nil
}
