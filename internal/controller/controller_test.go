package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.Validation("bad"), http.StatusBadRequest},
		{apperror.NotFound("gone"), http.StatusNotFound},
		{apperror.Conflict("dup"), http.StatusConflict},
		{apperror.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("%w: no key", apperror.ErrUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("question 2: %w", apperror.Validation("bad")), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRespondErrorBody(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(ctx, apperror.NotFound("class C9 not found"), "Failed to retrieve class")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Message != "Failed to retrieve class" || len(body.Details) != 1 || body.Details[0] != "not found: class C9 not found" {
		t.Errorf("body = %+v", body)
	}
}

func TestUintParam(t *testing.T) {
	r := gin.New()
	r.GET("/exams/:id", func(ctx *gin.Context) {
		id, ok := UintParam(ctx, "id")
		if !ok {
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, want := range map[string]int{
		"/exams/7":   http.StatusOK,
		"/exams/0":   http.StatusBadRequest,
		"/exams/abc": http.StatusBadRequest,
		"/exams/-1":  http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Errorf("GET %s = %d, want %d", path, w.Code, want)
		}
	}
}

func TestCreatedSetsLocation(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	Created(ctx, "/api/Exams/3", gin.H{"ExamId": 3})
	if w.Code != http.StatusCreated || w.Header().Get("Location") != "/api/Exams/3" {
		t.Errorf("status %d location %q", w.Code, w.Header().Get("Location"))
	}
}
