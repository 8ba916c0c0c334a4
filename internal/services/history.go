package services

import (
	"context"

	"jewelry-chat-backend/internal/models"
)

// HistoryService serves stored chat history for an item. Nothing is stored
// yet, so every item has an empty history.
type HistoryService struct{}

func NewHistoryService() *HistoryService {
	return &HistoryService{}
}

func (s *HistoryService) GetHistory(ctx context.Context, itemID string) ([]models.ConversationTurn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []models.ConversationTurn{}, nil
}
