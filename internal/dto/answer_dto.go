package dto

import (
	"time"

	"github.com/lshigami/examhub/internal/model"
)

type AnswerItem struct {
	QuestionID     string    `json:"QuestionId" binding:"required"`
	AnswerText     *string   `json:"AnswerText"`
	Grade          *int      `json:"Grade"`
	SelectedOption *string   `json:"SelectedOption"`
	IsTrue         *bool     `json:"IsTrue"`
	MatchingPairs  FlexPairs `json:"MatchingPairs" swaggertype:"array,object"`
}

// SubmitAnswersRequest is one student's sitting of one exam.
type SubmitAnswersRequest struct {
	ExamID    uint         `json:"ExamId" binding:"required"`
	StudentID string       `json:"StudentId"`
	Timestamp *FlexTime    `json:"Timestamp" swaggertype:"string" format:"date-time"`
	Answers   []AnswerItem `json:"Answers"`
}

type SubmitAnswersResponse struct {
	Inserted int      `json:"Inserted"`
	Skipped  []string `json:"Skipped"`
}

type StudentAnswerResponse struct {
	ID             string       `json:"StudentAnswerId"`
	QuestionID     string       `json:"QuestionId"`
	ClassExamID    uint         `json:"ClassExamId"`
	StudentID      string       `json:"StudentId"`
	AnswerText     string       `json:"AnswerText"`
	SelectedOption *string      `json:"SelectedOption"`
	IsTrue         *bool        `json:"IsTrue"`
	MatchingPairs  []model.Pair `json:"MatchingPairs"`
	SubmittedDate  time.Time    `json:"SubmittedDate"`
	Grade          *int         `json:"Grade"`
	GradingMethod  *string      `json:"GradingMethod"`
	Feedback       *string      `json:"Feedback"`
}

// ManualGradeRequest carries either a canned Mark (correct, half, incorrect)
// or a custom Grade, never both.
type ManualGradeRequest struct {
	Mark     *string `json:"Mark"`
	Grade    *int    `json:"Grade"`
	Feedback *string `json:"Feedback"`
}

type ExternalGrade struct {
	StudentAnswerID string  `json:"StudentAnswerId" binding:"required"`
	Grade           *int    `json:"Grade" binding:"required"`
	Feedback        *string `json:"Feedback"`
}

type ExternalGradesRequest struct {
	Grades []ExternalGrade `json:"Grades" binding:"required,min=1,dive"`
}

type AutoGradeRequest struct {
	ExamID    uint   `json:"ExamId" binding:"required"`
	StudentID string `json:"StudentId" binding:"required"`
}

type AutoGradeResponse struct {
	Graded int           `json:"Graded"`
	Failed []string      `json:"Failed"`
	Grade  GradeResponse `json:"Grade"`
}
