package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
)

// Canned marks a grader can pick instead of typing a number.
const (
	MarkCorrect   = "correct"
	MarkHalf      = "half"
	MarkIncorrect = "incorrect"
)

var markGrades = map[string]int{
	MarkCorrect:   100,
	MarkHalf:      50,
	MarkIncorrect: 0,
}

// ConvertMark maps a canned mark to its grade.
func ConvertMark(mark string) (int, error) {
	g, ok := markGrades[strings.ToLower(strings.TrimSpace(mark))]
	if !ok {
		return 0, apperror.Validation("unknown mark %q (want correct, half or incorrect)", mark)
	}
	return g, nil
}

// CheckGrade rejects grades outside 0..100.
func CheckGrade(grade int) error {
	if !model.ValidGrade(grade) {
		return apperror.Validation("grade %d is out of range (%d-%d)", grade, model.MinGrade, model.MaxGrade)
	}
	return nil
}

// ClampScore rounds a raw provider score and clamps it into 0..100.
func ClampScore(raw float64) int {
	if math.IsNaN(raw) {
		return model.MinGrade
	}
	return int(math.Max(model.MinGrade, math.Min(model.MaxGrade, math.Round(raw))))
}

// FractionToGrade converts correct/total into a 0..100 grade.
func FractionToGrade(correct, total int) (int, error) {
	if total <= 0 {
		return 0, fmt.Errorf("cannot score an empty set")
	}
	return ClampScore(float64(correct) * 100 / float64(total)), nil
}
