package repository

import (
	"fmt"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	WithTx(tx *gorm.DB) MessageRepository
	Create(message *model.Message) error
	FindByID(id uint) (*model.Message, error)
	FindByClassID(classID string) ([]model.Message, error)
	Delete(id uint) error
	DeleteByClassID(classID string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) WithTx(tx *gorm.DB) MessageRepository {
	return &messageRepository{db: tx}
}

func (r *messageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByID(id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, apperror.FromGorm(err, fmt.Sprintf("message %d", id))
	}
	return &message, nil
}

// FindByClassID lists newest first.
func (r *messageRepository) FindByClassID(classID string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("class_id = ?", classID).Order("sent_at DESC").Order("id DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("message %d not found", id)
	}
	return nil
}

func (r *messageRepository) DeleteByClassID(classID string) error {
	return r.db.Where("class_id = ?", classID).Delete(&model.Message{}).Error
}
