package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/internal/ws"
	"github.com/lumenhq/lumen-backend/pkg/logger"
)

// ChatService stores chat messages and hands them to the hub for fan-out
type ChatService struct {
	repo repository.ChatRepository
	hub  *ws.Hub
}

// NewChatService creates the chat service
func NewChatService(repo repository.ChatRepository, hub *ws.Hub) *ChatService {
	return &ChatService{repo: repo, hub: hub}
}

// PostMessage persists an inbound message and publishes it. A publish
// failure is invisible to the sender; the row is already stored.
func (s *ChatService) PostMessage(userID uint, username, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}

	msg := &domain.ChatMessage{
		ID:       uuid.New().String(),
		UserID:   userID,
		Username: username,
		Body:     body,
	}
	if err := s.repo.Create(msg); err != nil {
		logger.GetLogger().Error().Err(err).Msg("failed to store chat message")
		return
	}

	s.hub.PublishMessage(msg)
}

// Recent returns the latest messages in chronological order
func (s *ChatService) Recent(limit int) ([]*domain.ChatMessage, error) {
	return s.repo.ListRecent(limit)
}
