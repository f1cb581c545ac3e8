package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/metrics"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type GradingService interface {
	GradeAnswer(answerID string, req dto.ManualGradeRequest) (*dto.StudentAnswerResponse, error)
	ApplyExternalGrades(req dto.ExternalGradesRequest) (int, error)
	AutoGrade(ctx context.Context, examID uint, studentID string) (*dto.AutoGradeResponse, error)
	Aggregate(examID uint, studentID string) (*dto.GradeResponse, error)
}

type gradingService struct {
	answerRepo   repository.StudentAnswerRepository
	questionRepo repository.QuestionRepository
	examRepo     repository.ExamRepository
	ceRepo       repository.ClassExamRepository
	gradeRepo    repository.GradeRepository
	keyGrader    GradingProvider
	provider     GradingProvider
	db           *gorm.DB
}

func NewGradingService(
	answerRepo repository.StudentAnswerRepository,
	questionRepo repository.QuestionRepository,
	examRepo repository.ExamRepository,
	ceRepo repository.ClassExamRepository,
	gradeRepo repository.GradeRepository,
	provider GradingProvider,
	db *gorm.DB,
) GradingService {
	return &gradingService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		examRepo:     examRepo,
		ceRepo:       ceRepo,
		gradeRepo:    gradeRepo,
		keyGrader:    NewKeyGrader(),
		provider:     provider,
		db:           db,
	}
}

// AggregateScores averages the graded answers, keeping only the latest answer
// per question. ok is false when no answer carries a grade.
func AggregateScores(answers []model.StudentAnswer) (grade int, ok bool) {
	latest := make(map[string]model.StudentAnswer, len(answers))
	for _, a := range answers {
		cur, seen := latest[a.QuestionID]
		if !seen || a.SubmittedDate.After(cur.SubmittedDate) {
			latest[a.QuestionID] = a
		}
	}

	sum, n := 0, 0
	for _, a := range latest {
		if a.Grade == nil {
			continue
		}
		sum += *a.Grade
		n++
	}
	if n == 0 {
		return 0, false
	}
	return ClampScore(float64(sum) / float64(n)), true
}

func (s *gradingService) GradeAnswer(answerID string, req dto.ManualGradeRequest) (*dto.StudentAnswerResponse, error) {
	grader, err := NewManualGrader(req.Mark, req.Grade)
	if err != nil {
		return nil, err
	}
	answer, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		return nil, err
	}

	result, err := grader.Score(context.Background(), GradingInput{Answer: *answer})
	if err != nil {
		return nil, err
	}
	feedback := textOrNil(req.Feedback)
	if err := s.answerRepo.UpdateGrade(answerID, result.Score, result.Method, feedback); err != nil {
		log.Error().Err(err).Str("studentAnswerId", answerID).Msg("Failed to store manual grade")
		return nil, err
	}
	metrics.AnswersGraded.WithLabelValues(grader.Name(), "ok").Inc()
	if err := s.refreshAggregates([]model.StudentAnswer{*answer}); err != nil {
		return nil, err
	}

	answer.Grade = &result.Score
	method := result.Method
	answer.GradingMethod = &method
	if feedback != nil {
		answer.Feedback = feedback
	}
	resp := toStudentAnswerResponse(answer)
	return &resp, nil
}

// ApplyExternalGrades stores grades computed elsewhere, all or nothing.
func (s *gradingService) ApplyExternalGrades(req dto.ExternalGradesRequest) (int, error) {
	if len(req.Grades) == 0 {
		return 0, apperror.Validation("at least one grade is required")
	}
	for _, g := range req.Grades {
		if strings.TrimSpace(g.StudentAnswerID) == "" {
			return 0, apperror.Validation("StudentAnswerId is required")
		}
		if g.Grade == nil {
			return 0, apperror.Validation("Grade is required for answer %s", g.StudentAnswerID)
		}
		if err := CheckGrade(*g.Grade); err != nil {
			return 0, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.answerRepo.WithTx(tx)
		for _, g := range req.Grades {
			if err := repo.UpdateGrade(g.StudentAnswerID, *g.Grade, model.GradingMethodExternal, textOrNil(g.Feedback)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Int("count", len(req.Grades)).Msg("Failed to apply external grades")
		return 0, err
	}
	metrics.AnswersGraded.WithLabelValues(string(model.GradingMethodExternal), "ok").Add(float64(len(req.Grades)))

	answers := make([]model.StudentAnswer, 0, len(req.Grades))
	for _, g := range req.Grades {
		a, err := s.answerRepo.FindByID(g.StudentAnswerID)
		if err != nil {
			return 0, err
		}
		answers = append(answers, *a)
	}
	if err := s.refreshAggregates(answers); err != nil {
		return 0, err
	}
	return len(req.Grades), nil
}

// refreshAggregates recomputes the exam grade of every (student, exam) touched
// by answers that already has a Grade row. Missing rows are left to Aggregate.
func (s *gradingService) refreshAggregates(answers []model.StudentAnswer) error {
	type key struct {
		studentID string
		examID    uint
	}
	examOf := make(map[uint]uint)
	done := make(map[key]bool)
	for _, a := range answers {
		examID, ok := examOf[a.ClassExamID]
		if !ok {
			ce, err := s.ceRepo.FindByID(a.ClassExamID)
			if err != nil {
				return err
			}
			examID = ce.ExamID
			examOf[a.ClassExamID] = examID
		}
		k := key{a.StudentID, examID}
		if done[k] {
			continue
		}
		done[k] = true

		existing, err := s.gradeRepo.FindByStudentAndExam(a.StudentID, examID)
		if err != nil {
			return err
		}
		if existing == nil {
			continue
		}
		if _, err := s.Aggregate(examID, a.StudentID); err != nil {
			return err
		}
	}
	return nil
}

// AutoGrade grades every ungraded answer of the student for the exam and then
// aggregates. Objective questions always use the answer key.
func (s *gradingService) AutoGrade(ctx context.Context, examID uint, studentID string) (*dto.AutoGradeResponse, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.FindByExamAndStudent(examID, studentID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, apperror.NotFound("no answers from student %s for exam %d", studentID, examID)
	}

	ids := make([]string, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.questionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	resp := &dto.AutoGradeResponse{Failed: []string{}}
	var lastErr error
	for i := range answers {
		a := &answers[i]
		if a.Grade != nil {
			continue
		}
		q, ok := byID[a.QuestionID]
		if !ok {
			resp.Failed = append(resp.Failed, a.ID)
			continue
		}

		grader := s.provider
		if q.QuestionType.Objective() {
			grader = s.keyGrader
		}
		result, err := grader.Score(ctx, GradingInput{Question: q, Answer: *a})
		if err != nil {
			log.Warn().Err(err).Str("studentAnswerId", a.ID).Str("grader", grader.Name()).Msg("AutoGrade: answer left ungraded")
			metrics.AnswersGraded.WithLabelValues(grader.Name(), "error").Inc()
			resp.Failed = append(resp.Failed, a.ID)
			lastErr = err
			continue
		}
		feedback := textOrNil(&result.Feedback)
		if err := s.answerRepo.UpdateGrade(a.ID, result.Score, result.Method, feedback); err != nil {
			return nil, err
		}
		metrics.AnswersGraded.WithLabelValues(grader.Name(), "ok").Inc()
		resp.Graded++
	}
	sort.Strings(resp.Failed)

	grade, err := s.Aggregate(examID, studentID)
	if err != nil {
		if lastErr != nil && errors.Is(err, apperror.ErrValidation) {
			log.Error().Err(lastErr).Uint("examId", examID).Str("studentId", studentID).Strs("failed", resp.Failed).Msg("AutoGrade: no answer could be graded")
			return nil, fmt.Errorf("%w: %s grading failed for %d answers: %v", apperror.ErrUnavailable, s.provider.Name(), len(resp.Failed), lastErr)
		}
		return nil, err
	}
	resp.Grade = *grade
	return resp, nil
}

// Aggregate recomputes the (student, exam) grade and upserts it.
func (s *gradingService) Aggregate(examID uint, studentID string) (*dto.GradeResponse, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.FindByExamAndStudent(examID, studentID)
	if err != nil {
		return nil, err
	}
	value, ok := AggregateScores(answers)
	if !ok {
		return nil, apperror.Validation("student %s has no graded answers for exam %d", studentID, examID)
	}

	var grade *model.Grade
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.gradeRepo.WithTx(tx)
		existing, err := repo.FindByStudentAndExam(studentID, examID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Grade = value
			existing.CourseName = exam.CourseName
			grade = existing
			return repo.Update(existing)
		}
		grade = &model.Grade{StudentID: studentID, ExamID: examID, CourseName: exam.CourseName, Grade: value}
		return repo.Create(grade)
	})
	if err != nil {
		log.Error().Err(err).Uint("examId", examID).Str("studentId", studentID).Msg("Failed to store aggregate grade")
		return nil, err
	}
	metrics.GradesAggregated.Inc()
	log.Info().Uint("examId", examID).Str("studentId", studentID).Int("grade", value).Msg("Grade aggregated")

	var resp dto.GradeResponse
	copier.Copy(&resp, grade)
	return &resp, nil
}
