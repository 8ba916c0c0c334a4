package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"jewelry-chat-backend/internal/middleware"
	"jewelry-chat-backend/internal/models"
	"jewelry-chat-backend/internal/services"
)

// Shared helpers

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ChatResponse {
	return models.ChatResponse{Success: false, Error: message}
}

// handleServiceError maps service failures to status codes. Unknown errors
// are returned with their raw message.
func (h *ChatHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *services.ValidationError
		emptyErr      *services.UpstreamEmptyResponseError
		callErr       *services.UpstreamCallError
	)

	switch {
	case errors.As(err, &validationErr):
		h.logger.Info("chat request rejected",
			zap.Any("fields", validationErr.Fields),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeJSON(w, http.StatusBadRequest, errorResp(validationErr.Message))
	case errors.As(err, &emptyErr):
		writeJSON(w, http.StatusInternalServerError, errorResp(services.MsgNoResponse))
	case errors.As(err, &callErr):
		h.logError(r, "chat upstream call failed", err)
		writeJSON(w, http.StatusInternalServerError, errorResp(callErr.Error()))
	default:
		h.logError(r, "chat error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp(err.Error()))
	}
}

func (h *ChatHandler) logError(r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Error(err),
	)
}
