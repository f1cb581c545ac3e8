package repository

import (
	"errors"
	"testing"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/testutil"
)

func TestQuestionListsRoundTrip(t *testing.T) {
	db := testutil.Tx(t, testutil.DB(t))
	examID, ceID := seedQuestion(t, NewClassExamRepository(db), NewExamRepository(db), NewQuestionRepository(db), "q1")
	repo := NewQuestionRepository(db)

	isTrue := true
	pairs := &model.Question{ID: "q2", ClassExamID: ceID, QuestionType: model.QuestionTypeMatching, QuestionText: "Match", TimeLimit: 30,
		Pairs: model.PairList{{Left: "dog", Right: "bark"}}}
	tf := &model.Question{ID: "q3", ClassExamID: ceID, QuestionType: model.QuestionTypeTrueFalse, QuestionText: "True?", TimeLimit: 30, IsTrue: &isTrue}
	if err := repo.CreateBatch([]model.Question{*pairs, *tf}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByID("q2")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Pairs) != 1 || got.Pairs[0].Right != "bark" || got.Options != nil {
		t.Errorf("matching question = %+v", got)
	}

	var nullOptions int64
	db.Model(&model.Question{}).Where("id = ? AND options IS NULL", "q3").Count(&nullOptions)
	if nullOptions != 1 {
		t.Error("absent Options should be stored as NULL")
	}

	byExam, err := repo.FindByExamID(examID)
	if err != nil || len(byExam) != 3 {
		t.Errorf("FindByExamID = %d, %v", len(byExam), err)
	}
	byIDs, err := repo.FindByIDs([]string{"q1", "q3", "nope"})
	if err != nil || len(byIDs) != 2 {
		t.Errorf("FindByIDs = %d, %v", len(byIDs), err)
	}
	if none, err := repo.FindByExamID(examID + 100); err != nil || len(none) != 0 {
		t.Errorf("unknown exam = %d, %v", len(none), err)
	}
}

func TestQuestionDelete(t *testing.T) {
	db := testutil.Tx(t, testutil.DB(t))
	seedQuestion(t, NewClassExamRepository(db), NewExamRepository(db), NewQuestionRepository(db), "q1")
	repo := NewQuestionRepository(db)

	if err := repo.Delete("q1"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete("q1"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	if _, err := repo.FindByID("q1"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindByID err = %v", err)
	}
}
