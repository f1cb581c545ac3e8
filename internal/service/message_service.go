package service

import (
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
)

type MessageService interface {
	SendMessage(req dto.MessageRequest) (*dto.MessageResponse, error)
	ListMessages(classID string) ([]dto.MessageResponse, error)
	DeleteMessage(id uint) error
}

type messageService struct {
	repo      repository.MessageRepository
	classRepo repository.ClassRepository
}

func NewMessageService(repo repository.MessageRepository, classRepo repository.ClassRepository) MessageService {
	return &messageService{repo: repo, classRepo: classRepo}
}

// SendMessage posts to a class. Only the class teacher may send.
func (s *messageService) SendMessage(req dto.MessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.Validation("Content is required")
	}
	class, err := s.classRepo.FindByID(strings.TrimSpace(req.ClassID))
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(req.SenderEmail), class.TeacherEmail) {
		return nil, apperror.Validation("only the class teacher can send messages to class %s", class.ClassID)
	}

	message := model.Message{
		ClassID:     class.ClassID,
		SenderEmail: class.TeacherEmail,
		Content:     content,
		SentAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(&message); err != nil {
		log.Error().Err(err).Str("classId", class.ClassID).Msg("Failed to store message")
		return nil, err
	}

	var resp dto.MessageResponse
	copier.Copy(&resp, &message)
	return &resp, nil
}

func (s *messageService) ListMessages(classID string) ([]dto.MessageResponse, error) {
	if _, err := s.classRepo.FindByID(classID); err != nil {
		return nil, err
	}
	messages, err := s.repo.FindByClassID(classID)
	if err != nil {
		return nil, err
	}
	resps := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		var resp dto.MessageResponse
		copier.Copy(&resp, &messages[i])
		resps = append(resps, resp)
	}
	return resps, nil
}

func (s *messageService) DeleteMessage(id uint) error {
	return s.repo.Delete(id)
}
