package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lshigami/examhub/config"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
)

func TestNewManualGrader(t *testing.T) {
	tests := []struct {
		name    string
		mark    *string
		grade   *int
		want    int
		wantErr bool
	}{
		{"correct mark", strPtr("correct"), nil, 100, false},
		{"half mark", strPtr("half"), nil, 50, false},
		{"incorrect mark", strPtr("incorrect"), nil, 0, false},
		{"custom grade", nil, intPtr(73), 73, false},
		{"both set", strPtr("half"), intPtr(10), 0, true},
		{"neither set", nil, nil, 0, true},
		{"out of range", nil, intPtr(101), 0, true},
		{"negative", nil, intPtr(-1), 0, true},
		{"unknown mark", strPtr("meh"), nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewManualGrader(tt.mark, tt.grade)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrValidation) {
					t.Fatalf("err = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			res, err := g.Score(context.Background(), GradingInput{})
			if err != nil {
				t.Fatal(err)
			}
			if res.Score != tt.want || res.Method != model.GradingMethodManual || res.Feedback != "" {
				t.Errorf("Score = %+v, want %d manual", res, tt.want)
			}
		})
	}
}

func TestKeyGrader(t *testing.T) {
	mc := model.Question{ID: "q1", QuestionType: model.QuestionTypeMC, Options: model.StringList{"A", "B"}, CorrectAnswer: strPtr("B")}
	tf := model.Question{ID: "q2", QuestionType: model.QuestionTypeTrueFalse, IsTrue: boolPtr(false)}
	matching := model.Question{ID: "q3", QuestionType: model.QuestionTypeMatching, Pairs: model.PairList{
		{Left: "dog", Right: "bark"}, {Left: "cat", Right: "meow"}, {Left: "cow", Right: "moo"}, {Left: "duck", Right: "quack"},
	}}
	open := model.Question{ID: "q4", QuestionType: model.QuestionTypeOpen, CorrectAnswer: strPtr("Paris")}

	tests := []struct {
		name   string
		q      model.Question
		a      model.StudentAnswer
		want   int
		errors bool
	}{
		{"mc by text", mc, model.StudentAnswer{AnswerText: " b "}, 100, false},
		{"mc by selected option", mc, model.StudentAnswer{AnswerText: "x", SelectedOption: strPtr("B")}, 100, false},
		{"mc wrong", mc, model.StudentAnswer{AnswerText: "A"}, 0, false},
		{"mc unanswered", mc, model.StudentAnswer{AnswerText: model.DefaultAnswerText}, 0, false},
		{"truefalse flag", tf, model.StudentAnswer{IsTrue: boolPtr(false)}, 100, false},
		{"truefalse text", tf, model.StudentAnswer{AnswerText: "True"}, 0, false},
		{"truefalse no answer", tf, model.StudentAnswer{AnswerText: model.DefaultAnswerText}, 0, false},
		{"matching partial", matching, model.StudentAnswer{MatchingPairs: model.PairList{
			{Left: "dog", Right: "bark"}, {Left: "Cat", Right: "MEOW"}, {Left: "cow", Right: "quack"},
		}}, 50, false},
		{"matching repeated left counts once", matching, model.StudentAnswer{MatchingPairs: model.PairList{
			{Left: "dog", Right: "bark"}, {Left: "dog", Right: "bark"},
		}}, 25, false},
		{"open exact", open, model.StudentAnswer{AnswerText: "paris"}, 100, false},
		{"open different", open, model.StudentAnswer{AnswerText: "Lyon"}, 0, false},
		{"open without key", model.Question{ID: "q5", QuestionType: model.QuestionTypeOpen}, model.StudentAnswer{AnswerText: "x"}, 0, true},
	}

	g := NewKeyGrader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Score(context.Background(), GradingInput{Question: tt.q, Answer: tt.a})
			if tt.errors {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if res.Score != tt.want {
				t.Errorf("Score = %d, want %d", res.Score, tt.want)
			}
			if res.Method != model.GradingMethodKey {
				t.Errorf("Method = %q", res.Method)
			}
		})
	}
}

func TestNewGradingProviderFallsBackToKey(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"", "key"},
		{"key", "key"},
		{"gemini", "key"},
		{"openai", "key"},
		{"bogus", "key"},
	}
	for _, tt := range tests {
		cfg := &config.Config{Grading: config.Grading{Provider: tt.provider}}
		if got := NewGradingProvider(cfg, nil).Name(); got != tt.want {
			t.Errorf("provider %q: Name() = %q, want %q", tt.provider, got, tt.want)
		}
	}

	cfg := &config.Config{
		Grading: config.Grading{Provider: "openai"},
		OpenAI:  config.OpenAI{APIKey: "sk-test", Model: "gpt-4o-mini"},
	}
	if got := NewGradingProvider(cfg, nil).Name(); got != "openai" {
		t.Errorf("configured openai: Name() = %q", got)
	}
}

func TestDescribeForGrader(t *testing.T) {
	q := model.Question{QuestionType: model.QuestionTypePhoto, QuestionText: "What animal is shown?", CorrectAnswer: strPtr("a cat")}
	a := model.StudentAnswer{AnswerText: "a kitten"}
	got := describeForGrader(q, a)
	for _, want := range []string{"What animal is shown?", "REFERENCE ANSWER: a cat", "a kitten", "image"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}
