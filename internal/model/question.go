package model

import (
	"strings"
	"time"
)

type QuestionType string

const (
	QuestionTypeOpen          QuestionType = "open"
	QuestionTypeMC            QuestionType = "mc"
	QuestionTypeTrueFalse     QuestionType = "truefalse"
	QuestionTypeMatching      QuestionType = "matching"
	QuestionTypePhoto         QuestionType = "photo"
	QuestionTypePhotoWithText QuestionType = "photowithtext"
)

var questionTypes = []QuestionType{
	QuestionTypeOpen,
	QuestionTypeMC,
	QuestionTypeTrueFalse,
	QuestionTypeMatching,
	QuestionTypePhoto,
	QuestionTypePhotoWithText,
}

// ParseQuestionType matches the tag case-insensitively.
func ParseQuestionType(s string) (QuestionType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range questionTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Objective types can be graded from the stored key alone.
func (t QuestionType) Objective() bool {
	return t == QuestionTypeMC || t == QuestionTypeTrueFalse || t == QuestionTypeMatching
}

func (t QuestionType) HasImage() bool {
	return t == QuestionTypePhoto || t == QuestionTypePhotoWithText
}

const DefaultTimeLimit = 30

type Question struct {
	ID            string       `gorm:"primaryKey;size:36"`
	ClassExamID   uint         `gorm:"not null;index"`
	QuestionType  QuestionType `gorm:"size:32;not null"`
	QuestionText  string       `gorm:"type:text;not null"`
	TimeLimit     int          `gorm:"not null;default:30"`
	Options       StringList
	CorrectAnswer *string `gorm:"type:text"`
	IsTrue        *bool
	Pairs         PairList
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
