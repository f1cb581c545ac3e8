package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/examhub/config"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"github.com/rs/zerolog/log"
)

type GradingInput struct {
	Question model.Question
	Answer   model.StudentAnswer
}

type GradingResult struct {
	Score    int
	Feedback string
	Method   model.GradingMethod
}

// GradingProvider scores one answer on the 0..100 scale.
type GradingProvider interface {
	Name() string
	Score(ctx context.Context, in GradingInput) (*GradingResult, error)
}

// ManualGrader returns the grade a teacher picked, either a canned mark or a
// custom value.
type ManualGrader struct {
	grade int
}

// NewManualGrader accepts exactly one of mark and grade.
func NewManualGrader(mark *string, grade *int) (*ManualGrader, error) {
	hasMark := mark != nil && strings.TrimSpace(*mark) != ""
	switch {
	case hasMark && grade != nil:
		return nil, apperror.Validation("set either Mark or Grade, not both")
	case hasMark:
		g, err := ConvertMark(*mark)
		if err != nil {
			return nil, err
		}
		return &ManualGrader{grade: g}, nil
	case grade != nil:
		if err := CheckGrade(*grade); err != nil {
			return nil, err
		}
		return &ManualGrader{grade: *grade}, nil
	default:
		return nil, apperror.Validation("Mark or Grade is required")
	}
}

func (g *ManualGrader) Name() string { return string(model.GradingMethodManual) }

func (g *ManualGrader) Score(_ context.Context, _ GradingInput) (*GradingResult, error) {
	return &GradingResult{Score: g.grade, Method: model.GradingMethodManual}, nil
}

// KeyGrader compares the answer with the stored key. Matching questions score
// the share of correctly matched pairs; every other type is all or nothing.
type KeyGrader struct{}

func NewKeyGrader() *KeyGrader { return &KeyGrader{} }

func (g *KeyGrader) Name() string { return string(model.GradingMethodKey) }

func (g *KeyGrader) Score(_ context.Context, in GradingInput) (*GradingResult, error) {
	q, a := in.Question, in.Answer
	switch q.QuestionType {
	case model.QuestionTypeMC:
		if q.CorrectAnswer == nil {
			return nil, fmt.Errorf("question %s has no answer key", q.ID)
		}
		given := a.AnswerText
		if a.SelectedOption != nil {
			given = *a.SelectedOption
		}
		return allOrNothing(sameAnswer(given, *q.CorrectAnswer)), nil

	case model.QuestionTypeTrueFalse:
		if q.IsTrue == nil {
			return nil, fmt.Errorf("question %s has no answer key", q.ID)
		}
		given, ok := answeredBool(a)
		if !ok {
			return &GradingResult{Score: 0, Feedback: "No true/false answer given", Method: model.GradingMethodKey}, nil
		}
		return allOrNothing(given == *q.IsTrue), nil

	case model.QuestionTypeMatching:
		if len(q.Pairs) == 0 {
			return nil, fmt.Errorf("question %s has no pairs", q.ID)
		}
		key := make(map[string]string, len(q.Pairs))
		for _, p := range q.Pairs {
			key[normalizeAnswer(p.Left)] = normalizeAnswer(p.Right)
		}
		correct := 0
		seen := make(map[string]bool, len(a.MatchingPairs))
		for _, p := range a.MatchingPairs {
			left := normalizeAnswer(p.Left)
			if seen[left] {
				continue
			}
			seen[left] = true
			if want, ok := key[left]; ok && want == normalizeAnswer(p.Right) {
				correct++
			}
		}
		score, err := FractionToGrade(correct, len(q.Pairs))
		if err != nil {
			return nil, err
		}
		return &GradingResult{
			Score:    score,
			Feedback: fmt.Sprintf("%d of %d pairs matched", correct, len(q.Pairs)),
			Method:   model.GradingMethodKey,
		}, nil

	default:
		if q.CorrectAnswer == nil {
			return nil, fmt.Errorf("question %s has no answer key", q.ID)
		}
		return allOrNothing(sameAnswer(a.AnswerText, *q.CorrectAnswer)), nil
	}
}

func allOrNothing(ok bool) *GradingResult {
	if ok {
		return &GradingResult{Score: model.MaxGrade, Feedback: "Correct", Method: model.GradingMethodKey}
	}
	return &GradingResult{Score: model.MinGrade, Feedback: "Incorrect", Method: model.GradingMethodKey}
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func sameAnswer(given, want string) bool {
	return normalizeAnswer(given) == normalizeAnswer(want)
}

func answeredBool(a model.StudentAnswer) (bool, bool) {
	if a.IsTrue != nil {
		return *a.IsTrue, true
	}
	switch normalizeAnswer(a.AnswerText) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}
	b, err := strconv.ParseBool(normalizeAnswer(a.AnswerText))
	if err != nil {
		return false, false
	}
	return b, true
}

// NewGradingProvider picks the provider for open and photo answers from
// GRADING_PROVIDER. An AI provider without credentials falls back to the key.
func NewGradingProvider(cfg *config.Config, client *genai.Client) GradingProvider {
	switch cfg.Grading.Provider {
	case "gemini":
		if client == nil {
			log.Warn().Msg("GRADING_PROVIDER=gemini but GEMINI_API_KEY is not set; using answer key grading")
			return NewKeyGrader()
		}
		return NewGeminiGrader(client.GenerativeModel(cfg.Gemini.Model))
	case "openai":
		if cfg.OpenAI.APIKey == "" && cfg.OpenAI.BaseURL == "" {
			log.Warn().Msg("GRADING_PROVIDER=openai but OPENAI_API_KEY is not set; using answer key grading")
			return NewKeyGrader()
		}
		return NewOpenAIGrader(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "", "key":
		return NewKeyGrader()
	default:
		log.Warn().Str("provider", cfg.Grading.Provider).Msg("Unknown GRADING_PROVIDER; using answer key grading")
		return NewKeyGrader()
	}
}

// describeForGrader renders the question, key and answer for an AI prompt.
func describeForGrader(q model.Question, a model.StudentAnswer) string {
	var sb strings.Builder
	sb.WriteString("QUESTION TYPE: " + string(q.QuestionType) + "\n")
	sb.WriteString("QUESTION: " + q.QuestionText + "\n")
	if q.CorrectAnswer != nil {
		sb.WriteString("REFERENCE ANSWER: " + *q.CorrectAnswer + "\n")
	}
	if q.QuestionType.HasImage() {
		sb.WriteString("The student was shown the image attached to the question.\n")
	}
	sb.WriteString("\nSTUDENT ANSWER:\n---\n" + a.AnswerText + "\n---\n")
	return sb.String()
}
