package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jewelry-chat-backend/internal/handlers"
	"jewelry-chat-backend/internal/middleware"
	"jewelry-chat-backend/internal/models"
	"jewelry-chat-backend/internal/services"
)

type cannedGenerator struct {
	text string
}

func (g cannedGenerator) Generate(ctx context.Context, transcript []models.ConversationTurn, cfg models.GenerationConfig) (*models.GenerationResult, error) {
	text := g.text
	return &models.GenerationResult{Candidates: []models.Candidate{{
		Content: &models.CandidateContent{Parts: []models.CandidatePart{{Text: &text}}},
	}}}, nil
}

func newTestRouter(t *testing.T, limit int) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	chat := services.NewJewelryChatService(cannedGenerator{text: "*Lovely* piece."}, logger)
	h := handlers.NewChatHandler(chat, services.NewHistoryService(), logger)

	limiter := middleware.NewRateLimiter(limit, time.Minute)
	t.Cleanup(limiter.Stop)

	return New(h, limiter, logger, "*")
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, 10)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRouter_ChatRoutesMountedTwice(t *testing.T) {
	r := newTestRouter(t, 10)

	for _, prefix := range []string{"", "/api/v1"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, prefix+"/chat-jewelry", strings.NewReader(`{"message":"Is it real?","itemDetails":{"type":"Ring"}}`))
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, prefix)
		assert.Contains(t, rr.Body.String(), `"response":"Lovely piece."`)

		rr = httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, prefix+"/chat-history/any-item", nil))

		require.Equal(t, http.StatusOK, rr.Code, prefix)
		assert.JSONEq(t, `{"success":true,"history":[]}`, rr.Body.String())
	}
}

func TestRouter_ChatIsRateLimited(t *testing.T) {
	r := newTestRouter(t, 1)

	send := func() int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/chat-jewelry", strings.NewReader(`{"message":"hi","itemDetails":{}}`))
		req.RemoteAddr = "198.51.100.7:5000"
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())

	// History lookups are not limited.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat-history/x", nil)
	req.RemoteAddr = "198.51.100.7:5000"
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
