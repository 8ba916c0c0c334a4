package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"jewelry-chat-backend/internal/models"
)

const (
	fallbackUnknown     = "Unknown"
	fallbackDescription = "No description available"
	fallbackGemstones   = "None"
	fallbackCareTips    = "No care tips available"

	primingAck = "I understand. I'm ready to help you with any questions about this jewelry item. I can provide advice on care, value, authenticity, investment potential, and more. What would you like to know?"
)

// chatGenerationConfig is applied to every jewelry chat call.
var chatGenerationConfig = models.GenerationConfig{
	Temperature:     0.7,
	MaxOutputTokens: 300,
}

// BuildItemContext renders the labeled item block embedded in the priming turn.
func BuildItemContext(d *models.ItemDetails) string {
	if d == nil {
		d = &models.ItemDetails{}
	}

	var b strings.Builder
	b.WriteString("\nJewelry Item Details:\n")
	writeLine(&b, "Type", d.Type.String(), fallbackUnknown)
	writeLine(&b, "Material", d.Material.String(), fallbackUnknown)
	writeLine(&b, "Brand/Maker", d.BrandOrMaker.String(), fallbackUnknown)
	writeLine(&b, "Era/Style", d.EraOrStyle.String(), fallbackUnknown)
	writeLine(&b, "Authenticity", d.Authenticity.String(), fallbackUnknown)
	writeLine(&b, "Condition", d.Condition.String(), fallbackUnknown)
	writeLine(&b, "Estimated Price", d.EstimatedPrice.String(), fallbackUnknown)
	writeLine(&b, "Description", d.Description.String(), fallbackDescription)
	writeLine(&b, "Gemstones", gemstoneText(d.GemstoneDetails), fallbackGemstones)
	writeLine(&b, "Care Tips", d.CareTips.String(), fallbackCareTips)
	return b.String()
}

func writeLine(b *strings.Builder, label, value, fallback string) {
	if value == "" {
		value = fallback
	}
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

// gemstoneText serializes gemstone details as compact JSON; falsy values render as absent.
func gemstoneText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	text, err := models.CompactJSON(trimmed)
	if err != nil {
		return string(trimmed)
	}
	switch text {
	case "null", "false", `""`, "0":
		return ""
	}
	return text
}

func primingPrompt(itemContext string) string {
	return "You are a professional jewelry expert. Here are the details of a jewelry item that a user wants to discuss:\n\n" +
		itemContext +
		"\n\nPlease provide helpful, accurate, and professional advice about this jewelry item. Keep responses concise (2-3 sentences max) and avoid markdown formatting. Use plain text only."
}

// BuildTranscript assembles the priming turns, prior history and the new message, in that order.
// History turns are appended verbatim.
func BuildTranscript(details *models.ItemDetails, history []models.ConversationTurn, message string) []models.ConversationTurn {
	transcript := make([]models.ConversationTurn, 0, len(history)+3)
	transcript = append(transcript,
		models.NewTextTurn(models.RoleUser, primingPrompt(BuildItemContext(details))),
		models.NewTextTurn(models.RoleModel, primingAck),
	)
	transcript = append(transcript, history...)
	transcript = append(transcript, models.NewTextTurn(models.RoleUser, message))
	return transcript
}
