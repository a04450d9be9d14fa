package repository

import (
	"github.com/lumenhq/lumen-backend/internal/domain"
	"gorm.io/gorm"
)

// ChatRepository persists chat messages
type ChatRepository interface {
	Create(msg *domain.ChatMessage) error
	ListRecent(limit int) ([]*domain.ChatMessage, error)
}

// chatRepository GORM implementation
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates the repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(msg *domain.ChatMessage) error {
	return r.db.Create(msg).Error
}

// ListRecent returns the newest messages in ascending order for display
func (r *chatRepository) ListRecent(limit int) ([]*domain.ChatMessage, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	msgs := []*domain.ChatMessage{}
	err := r.db.Order("created_at DESC").Limit(limit).Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	// reverse newest-first into chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
