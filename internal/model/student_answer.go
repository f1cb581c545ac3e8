package model

import "time"

type GradingMethod string

const (
	GradingMethodManual   GradingMethod = "manual"
	GradingMethodKey      GradingMethod = "key"
	GradingMethodAI       GradingMethod = "ai"
	GradingMethodExternal GradingMethod = "external"
)

const DefaultAnswerText = "No answer provided"

// StudentAnswer is unique per (QuestionID, StudentID); the first write wins.
type StudentAnswer struct {
	ID             string `gorm:"primaryKey;size:36"`
	QuestionID     string `gorm:"size:36;not null;uniqueIndex:idx_answer_question_student"`
	ClassExamID    uint   `gorm:"not null;index"`
	StudentID      string `gorm:"size:128;not null;uniqueIndex:idx_answer_question_student;index"`
	AnswerText     string `gorm:"type:text;not null"`
	SelectedOption *string
	IsTrue         *bool
	MatchingPairs  PairList
	SubmittedDate  time.Time `gorm:"not null"`
	Grade          *int
	GradingMethod  *GradingMethod `gorm:"size:16"`
	Feedback       *string        `gorm:"type:text"`
}
