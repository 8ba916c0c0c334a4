package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"jewelry-chat-backend/internal/models"
)

type GeminiService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	logger   *zap.Logger
	rateChan chan struct{} // Token bucket
}

// NewGeminiService dials the Gemini API. Extra client options are appended
// after the API key (custom endpoint, HTTP client).
func NewGeminiService(apiKey, modelName string, concurrentReqs int, logger *zap.Logger, opts ...option.ClientOption) (*GeminiService, error) {
	ctx := context.Background()
	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	if concurrentReqs < 1 {
		concurrentReqs = 1
	}

	return &GeminiService{
		client:   client,
		model:    model,
		logger:   logger,
		rateChan: newRateBucket(concurrentReqs),
	}, nil
}

func newRateBucket(size int) chan struct{} {
	rateChan := make(chan struct{}, size)
	for i := 0; i < size; i++ {
		rateChan <- struct{}{}
	}
	return rateChan
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Generate sends the transcript as a chat: every turn but the last seeds the
// session history, the last one is sent as the new user message.
func (s *GeminiService) Generate(ctx context.Context, transcript []models.ConversationTurn, cfg models.GenerationConfig) (*models.GenerationResult, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}

	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	// Per-call copy so concurrent requests never share generation settings.
	model := *s.model
	model.SetTemperature(cfg.Temperature)
	model.SetMaxOutputTokens(cfg.MaxOutputTokens)

	last := transcript[len(transcript)-1]
	cs := model.StartChat()
	cs.History = toGenaiContents(transcript[:len(transcript)-1])

	resp, err := cs.SendMessage(ctx, toGenaiParts(last.Parts)...)
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return s.blockedResult(blocked), nil
		}
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	for i, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		s.logger.Debug("gemini candidate",
			zap.Int("index", i),
			zap.String("finish_reason", cand.FinishReason.String()),
			zap.Int32("token_count", cand.TokenCount),
		)
		if cand.FinishReason != genai.FinishReasonStop {
			s.logger.Warn("gemini stopped early", zap.String("finish_reason", cand.FinishReason.String()))
		}
	}

	return toGenerationResult(resp), nil
}

// blockedResult turns a safety or recitation block into a result with no
// usable text. A prompt-level block has no candidates at all.
func (s *GeminiService) blockedResult(blocked *genai.BlockedError) *models.GenerationResult {
	if blocked.PromptFeedback != nil {
		s.logger.Warn("gemini blocked prompt",
			zap.String("block_reason", blocked.PromptFeedback.BlockReason.String()),
		)
	}
	if blocked.Candidate == nil {
		return &models.GenerationResult{}
	}
	s.logger.Warn("gemini blocked candidate",
		zap.String("finish_reason", blocked.Candidate.FinishReason.String()),
	)
	return toGenerationResult(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{blocked.Candidate},
	})
}

func toGenaiContents(turns []models.ConversationTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: toGenaiParts(turn.Parts),
		})
	}
	return contents
}

func toGenaiParts(parts []models.Part) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		out = append(out, genai.Text(p.Text))
	}
	return out
}

func toGenerationResult(resp *genai.GenerateContentResponse) *models.GenerationResult {
	result := &models.GenerationResult{}
	if resp == nil {
		return result
	}

	for _, cand := range resp.Candidates {
		if cand == nil {
			result.Candidates = append(result.Candidates, models.Candidate{})
			continue
		}

		c := models.Candidate{FinishReason: cand.FinishReason.String()}
		if cand.Content != nil {
			content := &models.CandidateContent{Role: cand.Content.Role}
			for _, part := range cand.Content.Parts {
				var p models.CandidatePart
				if t, ok := part.(genai.Text); ok {
					text := string(t)
					p.Text = &text
				}
				content.Parts = append(content.Parts, p)
			}
			c.Content = content
		}
		result.Candidates = append(result.Candidates, c)
	}

	return result
}
