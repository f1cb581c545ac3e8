package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
)

func TestSubmitAnswersSkipsDuplicates(t *testing.T) {
	e := newTestEnv(t)
	s := e.seedExam(t)

	req := dto.SubmitAnswersRequest{
		ExamID:    s.examID,
		StudentID: "s1",
		Answers:   []dto.AnswerItem{{QuestionID: s.questionID, AnswerText: strPtr("B")}},
	}
	first, err := e.answerSvc.SubmitAnswers(req)
	if err != nil {
		t.Fatal(err)
	}
	if first.Inserted != 1 || len(first.Skipped) != 0 {
		t.Fatalf("first submission = %+v", first)
	}

	req.Answers[0].AnswerText = strPtr("C")
	second, err := e.answerSvc.SubmitAnswers(req)
	if err != nil {
		t.Fatal(err)
	}
	if second.Inserted != 0 || len(second.Skipped) != 1 || second.Skipped[0] != s.questionID {
		t.Fatalf("second submission = %+v", second)
	}

	answers, err := e.answerSvc.ListByExamAndStudent(s.examID, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 1 || answers[0].AnswerText != "B" {
		t.Fatalf("stored answers = %+v, want the first answer kept", answers)
	}
}

func TestSubmitAnswersDefaultsAndTimestamp(t *testing.T) {
	e := newTestEnv(t)
	s := e.seedExam(t)
	open := e.addQuestion(t, dto.QuestionRequest{ClassExamID: s.classExamID, QuestionType: "open", QuestionText: "Why?", CorrectAnswer: strPtr("Because")})

	ts := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	_, err := e.answerSvc.SubmitAnswers(dto.SubmitAnswersRequest{
		ExamID:    s.examID,
		StudentID: "s1",
		Timestamp: &dto.FlexTime{Time: ts},
		Answers: []dto.AnswerItem{
			{QuestionID: s.questionID, AnswerText: strPtr("  ")},
			{QuestionID: open, AnswerText: strPtr("Because"), Grade: intPtr(80)},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	answers, err := e.answerSvc.ListByQuestion(s.questionID)
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 1 || answers[0].AnswerText != model.DefaultAnswerText {
		t.Fatalf("blank answer = %+v, want default text", answers)
	}
	if !answers[0].SubmittedDate.Equal(ts) {
		t.Errorf("SubmittedDate = %v, want %v", answers[0].SubmittedDate, ts)
	}
	if answers[0].Grade != nil {
		t.Errorf("ungraded answer has grade %d", *answers[0].Grade)
	}

	graded, err := e.answerSvc.ListByQuestion(open)
	if err != nil {
		t.Fatal(err)
	}
	if len(graded) != 1 || graded[0].Grade == nil || *graded[0].Grade != 80 {
		t.Fatalf("graded answer = %+v", graded)
	}
	if graded[0].GradingMethod == nil || *graded[0].GradingMethod != string(model.GradingMethodExternal) {
		t.Errorf("GradingMethod = %v, want external", graded[0].GradingMethod)
	}
}

func TestSubmitAnswersValidatesBeforeWriting(t *testing.T) {
	e := newTestEnv(t)
	s := e.seedExam(t)

	tests := []struct {
		name    string
		req     dto.SubmitAnswersRequest
		wantErr error
	}{
		{
			name:    "missing student",
			req:     dto.SubmitAnswersRequest{ExamID: s.examID, Answers: []dto.AnswerItem{{QuestionID: s.questionID}}},
			wantErr: apperror.ErrValidation,
		},
		{
			name:    "no answers",
			req:     dto.SubmitAnswersRequest{ExamID: s.examID, StudentID: "s1"},
			wantErr: apperror.ErrValidation,
		},
		{
			name: "grade out of range",
			req: dto.SubmitAnswersRequest{ExamID: s.examID, StudentID: "s1", Answers: []dto.AnswerItem{
				{QuestionID: s.questionID, Grade: intPtr(101)},
			}},
			wantErr: apperror.ErrValidation,
		},
		{
			name: "unknown exam",
			req: dto.SubmitAnswersRequest{ExamID: 999, StudentID: "s1", Answers: []dto.AnswerItem{
				{QuestionID: s.questionID},
			}},
			wantErr: apperror.ErrNotFound,
		},
		{
			name: "one unknown question rejects the batch",
			req: dto.SubmitAnswersRequest{ExamID: s.examID, StudentID: "s1", Answers: []dto.AnswerItem{
				{QuestionID: s.questionID, AnswerText: strPtr("B")},
				{QuestionID: "does-not-exist", AnswerText: strPtr("x")},
			}},
			wantErr: apperror.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.answerSvc.SubmitAnswers(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n := countRows(t, e.db, &model.StudentAnswer{}); n != 0 {
		t.Fatalf("%d answers written by rejected submissions", n)
	}
}

func TestSubmitAnswersRejectsQuestionFromOtherExam(t *testing.T) {
	e := newTestEnv(t)
	s := e.seedExam(t)

	other, err := e.examSvc.CreateExam(dto.ExamRequest{Title: "Final", Date: "2025-07-01", CourseName: "Math", Time: "10:00"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.answerSvc.SubmitAnswers(dto.SubmitAnswersRequest{
		ExamID:    other.ID,
		StudentID: "s1",
		Answers:   []dto.AnswerItem{{QuestionID: s.questionID, AnswerText: strPtr("B")}},
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
