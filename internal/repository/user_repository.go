package repository

import (
	"strings"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByRole(role model.Role) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return apperror.FromGorm(r.db.Create(user).Error, "user "+user.Email)
}

// FindByEmail matches case-insensitively; emails are stored lower-cased.
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperror.FromGorm(err, "user "+email)
	}
	return &user, nil
}

func (r *userRepository) FindByRole(role model.Role) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("role = ?", role).Order("email ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
