package service

import (
	"errors"
	"testing"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)

	user, err := e.userSvc.Register(dto.RegisterRequest{Email: " Ana@School.org ", Password: "hunter22", FullName: "Ana", Role: "Student"})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "ana@school.org" || user.Role != model.RoleStudent || user.ID == 0 {
		t.Fatalf("registered = %+v", user)
	}

	if _, err := e.userSvc.Register(dto.RegisterRequest{Email: "ana@school.org", Password: "hunter22", Role: "student"}); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate err = %v", err)
	}
	if _, err := e.userSvc.Register(dto.RegisterRequest{Email: "b@school.org", Password: "123", Role: "student"}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("short password err = %v", err)
	}
	if _, err := e.userSvc.Register(dto.RegisterRequest{Email: "c@school.org", Password: "hunter22", Role: "admin"}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("bad role err = %v", err)
	}

	logged, err := e.userSvc.Login(dto.LoginRequest{Email: "ANA@school.org", Password: "hunter22"})
	if err != nil {
		t.Fatal(err)
	}
	if logged.ID != user.ID {
		t.Errorf("login returned %+v", logged)
	}
	if _, err := e.userSvc.Login(dto.LoginRequest{Email: "ana@school.org", Password: "wrong-pass"}); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := e.userSvc.Login(dto.LoginRequest{Email: "ghost@school.org", Password: "hunter22"}); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("unknown email err = %v", err)
	}

	students, err := e.userSvc.ListByRole("student")
	if err != nil || len(students) != 1 {
		t.Errorf("ListByRole = %+v, %v", students, err)
	}
	if _, err := e.userSvc.GetByEmail("ghost@school.org"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail err = %v", err)
	}
}
