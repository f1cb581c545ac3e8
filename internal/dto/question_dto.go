package dto

import (
	"time"

	"github.com/lshigami/examhub/internal/model"
)

// QuestionRequest is the create/update payload. Answer is a legacy field and
// must be null.
type QuestionRequest struct {
	ClassExamID   uint        `json:"ClassExamId" binding:"required"`
	QuestionType  string      `json:"QuestionType" binding:"required"`
	QuestionText  string      `json:"QuestionText"`
	Answer        *string     `json:"Answer"`
	CorrectAnswer *string     `json:"CorrectAnswer"`
	Options       FlexStrings `json:"Options" swaggertype:"array,string"`
	IsTrue        *bool       `json:"IsTrue"`
	Pairs         FlexPairs   `json:"Pairs" swaggertype:"array,object"`
	ImageURL      *string     `json:"ImageUrl"`
	TimeLimit     int         `json:"TimeLimit"`
}

type QuestionResponse struct {
	ID            string       `json:"QuestionId"`
	ClassExamID   uint         `json:"ClassExamId"`
	QuestionType  string       `json:"QuestionType"`
	QuestionText  string       `json:"QuestionText"`
	CorrectAnswer *string      `json:"CorrectAnswer"`
	Options       []string     `json:"Options"`
	IsTrue        *bool        `json:"IsTrue"`
	Pairs         []model.Pair `json:"Pairs"`
	ImageURL      *string      `json:"ImageUrl"`
	TimeLimit     int          `json:"TimeLimit"`
	CreatedAt     time.Time    `json:"CreatedAt"`
}

type GenerateQuestionsRequest struct {
	ClassExamID  uint   `json:"ClassExamId" binding:"required"`
	QuestionType string `json:"QuestionType" binding:"required"`
	Topic        string `json:"Topic" binding:"required"`
	Count        int    `json:"Count"`
}
