package service

import (
	"errors"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type UserService interface {
	Register(req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req dto.LoginRequest) (*dto.UserResponse, error)
	GetByEmail(email string) (*dto.UserResponse, error)
	ListByRole(role string) ([]dto.UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func toUserResponse(u *model.User) *dto.UserResponse {
	var resp dto.UserResponse
	copier.Copy(&resp, u)
	return &resp
}

func (s *userService) Register(req dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return nil, apperror.Validation("Role must be teacher or student")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperror.Validation("Password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, apperror.Conflict("email %s is already registered", email)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := model.User{
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to register user")
		return nil, err
	}
	log.Info().Str("email", email).Str("role", string(role)).Msg("User registered")
	return toUserResponse(&user), nil
}

// Login checks the credentials. Unknown email and wrong password look the same.
func (s *userService) Login(req dto.LoginRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("email", user.Email).Msg("Login failed: password mismatch")
		return nil, apperror.ErrUnauthorized
	}
	return toUserResponse(user), nil
}

func (s *userService) GetByEmail(email string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) ListByRole(role string) ([]dto.UserResponse, error) {
	r, ok := model.ParseRole(role)
	if !ok {
		return nil, apperror.Validation("Role must be teacher or student")
	}
	users, err := s.repo.FindByRole(r)
	if err != nil {
		return nil, err
	}
	resps := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resps = append(resps, *toUserResponse(&users[i]))
	}
	return resps, nil
}
