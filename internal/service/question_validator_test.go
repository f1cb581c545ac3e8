package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func TestValidateQuestion(t *testing.T) {
	pairs := []model.Pair{{Left: "a", Right: "1"}}

	tests := []struct {
		name    string
		in      QuestionFields
		want    model.QuestionType
		wantErr string
	}{
		{
			name: "mc accepted",
			in:   QuestionFields{QuestionType: "mc", QuestionText: "Pick", Options: []string{"A", "B"}, CorrectAnswer: strPtr("A")},
			want: model.QuestionTypeMC,
		},
		{
			name:    "mc with IsTrue rejected",
			in:      QuestionFields{QuestionType: "mc", QuestionText: "Pick", Options: []string{"A", "B"}, CorrectAnswer: strPtr("A"), IsTrue: boolPtr(true)},
			wantErr: "IsTrue must be null",
		},
		{
			name:    "mc answer not in options",
			in:      QuestionFields{QuestionType: "MC", QuestionText: "Pick", Options: []string{"A", "B"}, CorrectAnswer: strPtr("C")},
			wantErr: "CorrectAnswer must be one of Options",
		},
		{
			name:    "mc missing options",
			in:      QuestionFields{QuestionType: "mc", QuestionText: "Pick", CorrectAnswer: strPtr("A")},
			wantErr: "Options is required",
		},
		{
			name: "open accepted",
			in:   QuestionFields{QuestionType: "open", QuestionText: "Explain", CorrectAnswer: strPtr("because")},
			want: model.QuestionTypeOpen,
		},
		{
			name:    "open blank answer is absent",
			in:      QuestionFields{QuestionType: "open", QuestionText: "Explain", CorrectAnswer: strPtr("   ")},
			wantErr: "CorrectAnswer is required",
		},
		{
			name:    "open with image rejected",
			in:      QuestionFields{QuestionType: "open", QuestionText: "Explain", CorrectAnswer: strPtr("x"), ImageURL: strPtr("http://img")},
			wantErr: "ImageUrl must be null",
		},
		{
			name: "truefalse accepted with false",
			in:   QuestionFields{QuestionType: "TrueFalse", QuestionText: "Sky is green", IsTrue: boolPtr(false)},
			want: model.QuestionTypeTrueFalse,
		},
		{
			name:    "truefalse with correct answer rejected",
			in:      QuestionFields{QuestionType: "truefalse", QuestionText: "Q", IsTrue: boolPtr(true), CorrectAnswer: strPtr("true")},
			wantErr: "CorrectAnswer must be null",
		},
		{
			name: "matching accepted",
			in:   QuestionFields{QuestionType: "matching", QuestionText: "Match", Pairs: pairs},
			want: model.QuestionTypeMatching,
		},
		{
			name:    "matching with blank side",
			in:      QuestionFields{QuestionType: "matching", QuestionText: "Match", Pairs: []model.Pair{{Left: "a", Right: ""}}},
			wantErr: "pair 1 must have both Left and Right",
		},
		{
			name:    "matching empty pairs",
			in:      QuestionFields{QuestionType: "matching", QuestionText: "Match", Pairs: []model.Pair{}},
			wantErr: "Pairs is required",
		},
		{
			name: "photo accepted",
			in:   QuestionFields{QuestionType: "photo", QuestionText: "Name it", ImageURL: strPtr("http://img"), CorrectAnswer: strPtr("cat")},
			want: model.QuestionTypePhoto,
		},
		{
			name:    "photo without correct answer",
			in:      QuestionFields{QuestionType: "photo", QuestionText: "Name it", ImageURL: strPtr("http://img")},
			wantErr: "CorrectAnswer is required",
		},
		{
			name:    "photowithtext without image",
			in:      QuestionFields{QuestionType: "photowithtext", QuestionText: "Describe", CorrectAnswer: strPtr("x")},
			wantErr: "ImageUrl is required",
		},
		{
			name:    "photowithtext with pairs",
			in:      QuestionFields{QuestionType: "photowithtext", QuestionText: "Describe", CorrectAnswer: strPtr("x"), ImageURL: strPtr("u"), Pairs: pairs},
			wantErr: "Pairs must be null",
		},
		{
			name:    "unknown type",
			in:      QuestionFields{QuestionType: "essay", QuestionText: "Q"},
			wantErr: "Invalid question type",
		},
		{
			name:    "missing text",
			in:      QuestionFields{QuestionType: "open", CorrectAnswer: strPtr("x")},
			wantErr: "QuestionText is required",
		},
		{
			name:    "legacy answer set",
			in:      QuestionFields{QuestionType: "open", QuestionText: "Q", CorrectAnswer: strPtr("x"), Answer: strPtr("x")},
			wantErr: "Answer must be null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateQuestion(tt.in)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !errors.Is(err, apperror.ErrValidation) {
					t.Errorf("error %v is not a validation error", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("type = %q, want %q", got, tt.want)
			}
		})
	}
}
