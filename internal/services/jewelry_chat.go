package services

import (
	"context"

	"go.uber.org/zap"

	"jewelry-chat-backend/internal/models"
)

// TextGenerator is the upstream text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, transcript []models.ConversationTurn, cfg models.GenerationConfig) (*models.GenerationResult, error)
}

// JewelryChatService answers user questions about a single jewelry item.
type JewelryChatService struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewJewelryChatService(generator TextGenerator, logger *zap.Logger) *JewelryChatService {
	return &JewelryChatService{generator: generator, logger: logger}
}

// Chat validates the request, asks the generator for a reply and returns it sanitized.
func (s *JewelryChatService) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	if err := validateChatRequest(req); err != nil {
		return "", err
	}

	transcript := BuildTranscript(req.ItemDetails, req.ChatHistory, req.Message)

	result, err := s.generator.Generate(ctx, transcript, chatGenerationConfig)
	if err != nil {
		s.logger.Error("jewelry chat generation failed",
			zap.String("item_id", req.ItemID),
			zap.Int("turns", len(transcript)),
			zap.Error(err),
		)
		return "", newUpstreamCallError(err)
	}

	text, ok := ExtractText(result)
	if !ok {
		s.logger.Warn("jewelry chat got no text from model", zap.String("item_id", req.ItemID))
		return "", &UpstreamEmptyResponseError{}
	}

	return SanitizeReply(text), nil
}

func validateChatRequest(req models.ChatRequest) error {
	fields := map[string]string{}
	if req.Message == "" {
		fields["message"] = "required"
	}
	if req.ItemDetails == nil {
		fields["itemDetails"] = "required"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: MsgValidationFailed, Fields: fields}
	}
	return nil
}

// ExtractText returns the first candidate's first part text, if any.
func ExtractText(result *models.GenerationResult) (string, bool) {
	if result == nil || len(result.Candidates) == 0 {
		return "", false
	}
	content := result.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	text := content.Parts[0].Text
	if text == nil || *text == "" {
		return "", false
	}
	return *text, true
}
