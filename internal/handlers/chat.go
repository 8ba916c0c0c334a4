package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jewelry-chat-backend/internal/middleware"
	"jewelry-chat-backend/internal/models"
)

type chatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (string, error)
}

type historyService interface {
	GetHistory(ctx context.Context, itemID string) ([]models.ConversationTurn, error)
}

type ChatHandler struct {
	chatService    chatService
	historyService historyService
	logger         *zap.Logger
	now            func() time.Time
}

func NewChatHandler(chatService chatService, historyService historyService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		historyService: historyService,
		logger:         logger,
		now:            time.Now,
	}
}

func (h *ChatHandler) ChatJewelry(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	reply, err := h.chatService.Chat(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Success:   true,
		Response:  reply,
		Timestamp: formatTimestamp(h.now()),
	})
}

func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	history, err := h.historyService.GetHistory(r.Context(), itemID)
	if err != nil {
		h.logger.Error("chat history lookup failed",
			zap.String("item_id", itemID),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, models.HistoryResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{Success: true, History: history})
}
