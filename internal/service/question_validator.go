package service

import (
	"strings"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
)

// QuestionFields is everything the validator looks at. Blank strings and empty
// lists count as absent.
type QuestionFields struct {
	QuestionType  string
	QuestionText  string
	Answer        *string
	CorrectAnswer *string
	Options       []string
	IsTrue        *bool
	Pairs         []model.Pair
	ImageURL      *string
}

type fieldRule struct {
	name    string
	present func(QuestionFields) bool
}

var (
	ruleCorrectAnswer = fieldRule{"CorrectAnswer", func(f QuestionFields) bool { return hasText(f.CorrectAnswer) }}
	ruleOptions       = fieldRule{"Options", func(f QuestionFields) bool { return len(f.Options) > 0 }}
	ruleIsTrue        = fieldRule{"IsTrue", func(f QuestionFields) bool { return f.IsTrue != nil }}
	rulePairs         = fieldRule{"Pairs", func(f QuestionFields) bool { return len(f.Pairs) > 0 }}
	ruleImageURL      = fieldRule{"ImageUrl", func(f QuestionFields) bool { return hasText(f.ImageURL) }}
)

type typeRules struct {
	required  []fieldRule
	forbidden []fieldRule
}

var questionRules = map[model.QuestionType]typeRules{
	model.QuestionTypeOpen: {
		required:  []fieldRule{ruleCorrectAnswer},
		forbidden: []fieldRule{ruleOptions, ruleIsTrue, rulePairs, ruleImageURL},
	},
	model.QuestionTypeMC: {
		required:  []fieldRule{ruleOptions, ruleCorrectAnswer},
		forbidden: []fieldRule{ruleIsTrue, rulePairs, ruleImageURL},
	},
	model.QuestionTypeTrueFalse: {
		required:  []fieldRule{ruleIsTrue},
		forbidden: []fieldRule{ruleCorrectAnswer, ruleOptions, rulePairs, ruleImageURL},
	},
	model.QuestionTypeMatching: {
		required:  []fieldRule{rulePairs},
		forbidden: []fieldRule{ruleOptions, ruleIsTrue, ruleCorrectAnswer, ruleImageURL},
	},
	model.QuestionTypePhoto: {
		required:  []fieldRule{ruleImageURL, ruleCorrectAnswer},
		forbidden: []fieldRule{ruleOptions, ruleIsTrue, rulePairs},
	},
	model.QuestionTypePhotoWithText: {
		required:  []fieldRule{ruleImageURL, ruleCorrectAnswer},
		forbidden: []fieldRule{ruleOptions, ruleIsTrue, rulePairs},
	},
}

// ValidateQuestion checks the presence contract of the question type and
// returns the parsed type. The error names the first rule that failed.
func ValidateQuestion(f QuestionFields) (model.QuestionType, error) {
	qt, ok := model.ParseQuestionType(f.QuestionType)
	if !ok {
		return "", apperror.Validation("Invalid question type")
	}
	if strings.TrimSpace(f.QuestionText) == "" {
		return "", apperror.Validation("QuestionText is required")
	}
	if hasText(f.Answer) {
		return "", apperror.Validation("Answer must be null; use CorrectAnswer")
	}

	rules := questionRules[qt]
	for _, r := range rules.required {
		if !r.present(f) {
			return "", apperror.Validation("%s is required for %s questions", r.name, qt)
		}
	}
	for _, r := range rules.forbidden {
		if r.present(f) {
			return "", apperror.Validation("%s must be null for %s questions", r.name, qt)
		}
	}

	switch qt {
	case model.QuestionTypeMC:
		answer := strings.TrimSpace(*f.CorrectAnswer)
		found := false
		for _, o := range f.Options {
			if strings.TrimSpace(o) == answer {
				found = true
				break
			}
		}
		if !found {
			return "", apperror.Validation("CorrectAnswer must be one of Options")
		}
	case model.QuestionTypeMatching:
		for i, p := range f.Pairs {
			if strings.TrimSpace(p.Left) == "" || strings.TrimSpace(p.Right) == "" {
				return "", apperror.Validation("pair %d must have both Left and Right", i+1)
			}
		}
	}
	return qt, nil
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// textOrNil trims s and drops it when blank.
func textOrNil(s *string) *string {
	if !hasText(s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
