package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubQuestionService struct {
	service.QuestionService
	created []dto.QuestionRequest
	byExam  []dto.QuestionResponse
	err     error
}

func (s *stubQuestionService) CreateQuestion(req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, req)
	return &dto.QuestionResponse{ID: "q-1", ClassExamID: req.ClassExamID, QuestionType: req.QuestionType}, nil
}

func (s *stubQuestionService) GetQuestionsByExam(uint) ([]dto.QuestionResponse, error) {
	return s.byExam, s.err
}

func (s *stubQuestionService) DeleteQuestion(id string) error {
	if id == "missing" {
		return apperror.NotFound("question %s not found", id)
	}
	return nil
}

func (s *stubQuestionService) CreateQuestions(reqs []dto.QuestionRequest) ([]dto.QuestionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]dto.QuestionResponse, 0, len(reqs))
	for i, req := range reqs {
		s.created = append(s.created, req)
		out = append(out, dto.QuestionResponse{ID: fmt.Sprintf("q-%d", i+1), ClassExamID: req.ClassExamID, QuestionType: req.QuestionType})
	}
	return out, nil
}

type stubGenerator struct {
	resp []dto.QuestionResponse
	err  error
}

func (g stubGenerator) Generate(context.Context, dto.GenerateQuestionsRequest) ([]dto.QuestionResponse, error) {
	return g.resp, g.err
}

func newQuestionRouter(qs *stubQuestionService, gen service.QuestionGenerator) *gin.Engine {
	qc := NewQuestionController(qs, nil, gen)
	ec := NewExamController(nil, nil, qs)

	r := gin.New()
	r.POST("/api/Questions", qc.CreateQuestion)
	r.POST("/api/Questions/batch", qc.CreateQuestions)
	r.POST("/api/Questions/Generate", qc.GenerateQuestions)
	r.DELETE("/api/Questions/:id", qc.DeleteQuestion)
	r.GET("/api/Exams/:id/Questions", ec.GetQuestionsByExam)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateQuestionHandler(t *testing.T) {
	qs := &stubQuestionService{}
	r := newQuestionRouter(qs, stubGenerator{})

	w := do(r, http.MethodPost, "/api/Questions", `{"ClassExamId": 4, "QuestionType": "mc", "QuestionText": "Pick", "Options": "A,B,C,D", "CorrectAnswer": "B"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/Questions/q-1" {
		t.Errorf("Location = %q", loc)
	}
	if len(qs.created) != 1 || len(qs.created[0].Options) != 4 {
		t.Fatalf("service received %+v", qs.created)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["QuestionId"] != "q-1" {
		t.Errorf("response = %v", resp)
	}

	w = do(r, http.MethodPost, "/api/Questions", `{"QuestionText": "no type"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing required fields status = %d", w.Code)
	}
}

func TestCreateQuestionHandlerMapsErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.Validation("Options is required for mc questions"), http.StatusBadRequest},
		{apperror.NotFound("class exam 4 not found"), http.StatusNotFound},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := newQuestionRouter(&stubQuestionService{err: tt.err}, stubGenerator{})
		w := do(r, http.MethodPost, "/api/Questions", `{"ClassExamId": 4, "QuestionType": "mc", "QuestionText": "Pick"}`)
		if w.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, w.Code, tt.want)
		}
		var body dto.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Message == "" || len(body.Details) == 0 {
			t.Errorf("%v: body = %s", tt.err, w.Body.String())
		}
	}
}

func TestGetQuestionsByExamEmptyIsNotFound(t *testing.T) {
	r := newQuestionRouter(&stubQuestionService{byExam: []dto.QuestionResponse{}}, stubGenerator{})
	w := do(r, http.MethodGet, "/api/Exams/1/Questions", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body dto.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Message != "No questions found" {
		t.Errorf("message = %q", body.Message)
	}

	r = newQuestionRouter(&stubQuestionService{byExam: []dto.QuestionResponse{{ID: "q"}}}, stubGenerator{})
	if w := do(r, http.MethodGet, "/api/Exams/1/Questions", ""); w.Code != http.StatusOK {
		t.Errorf("non-empty status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/Exams/x/Questions", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", w.Code)
	}
}

func TestDeleteQuestionHandler(t *testing.T) {
	r := newQuestionRouter(&stubQuestionService{}, stubGenerator{})
	if w := do(r, http.MethodDelete, "/api/Questions/q-1", ""); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/Questions/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", w.Code)
	}
}

func TestGenerateUnavailable(t *testing.T) {
	gen := stubGenerator{err: fmt.Errorf("%w: question generation needs GEMINI_API_KEY", apperror.ErrUnavailable)}
	r := newQuestionRouter(&stubQuestionService{}, gen)
	w := do(r, http.MethodPost, "/api/Questions/Generate", `{"ClassExamId": 1, "QuestionType": "mc", "Topic": "fractions"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", w.Code)
	}
}

func TestCreateQuestionsHandlerSetsLocation(t *testing.T) {
	qs := &stubQuestionService{}
	r := newQuestionRouter(qs, stubGenerator{})
	body := `[{"ClassExamId": 7, "QuestionType": "open", "QuestionText": "Why?", "CorrectAnswer": "Because"},
		{"ClassExamId": 7, "QuestionType": "truefalse", "QuestionText": "Sky is blue", "IsTrue": true}]`

	w := do(r, http.MethodPost, "/api/Questions/batch", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/ClassExams/7/Questions" {
		t.Errorf("Location = %q", loc)
	}
	if len(qs.created) != 2 {
		t.Errorf("created %d questions", len(qs.created))
	}
}

func TestGenerateQuestionsSetsLocation(t *testing.T) {
	gen := stubGenerator{resp: []dto.QuestionResponse{{ID: "g-1", ClassExamID: 3}}}
	r := newQuestionRouter(&stubQuestionService{}, gen)
	w := do(r, http.MethodPost, "/api/Questions/Generate", `{"ClassExamId": 3, "QuestionType": "mc", "Topic": "fractions"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/ClassExams/3/Questions" {
		t.Errorf("Location = %q", loc)
	}
}
