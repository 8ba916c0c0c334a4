package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is one text fragment of a conversation turn.
type Part struct {
	Text string `json:"text"`
}

// ConversationTurn is a single role-tagged message sent to the generation service.
type ConversationTurn struct {
	Role  string `json:"role"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// NewTextTurn builds a turn holding a single text part.
func NewTextTurn(role, text string) ConversationTurn {
	return ConversationTurn{Role: role, Parts: []Part{{Text: text}}}
}

// ItemDetails describes the jewelry item the user is chatting about.
// Every field is optional; rendering falls back to a placeholder.
type ItemDetails struct {
	Type            LooseString     `json:"type"`
	Material        LooseString     `json:"material"`
	BrandOrMaker    LooseString     `json:"brandOrMaker"`
	EraOrStyle      LooseString     `json:"eraOrStyle"`
	Authenticity    LooseString     `json:"authenticity"`
	Condition       LooseString     `json:"condition"`
	EstimatedPrice  LooseString     `json:"estimatedPrice"`
	Description     LooseString     `json:"description"`
	GemstoneDetails json.RawMessage `json:"gemstoneDetails"`
	CareTips        LooseString     `json:"careTips"`
}

// ChatRequest is the payload sent to POST /chat-jewelry.
type ChatRequest struct {
	ItemID      string             `json:"itemId"`
	Message     string             `json:"message"`
	ChatHistory []ConversationTurn `json:"chatHistory"`
	ItemDetails *ItemDetails       `json:"itemDetails"`
}

// ChatResponse is returned by POST /chat-jewelry for both outcomes.
type ChatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// HistoryResponse is returned by GET /chat-history/{itemId}.
type HistoryResponse struct {
	Success bool               `json:"success"`
	History []ConversationTurn `json:"history,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// MarshalJSON keeps history as an array on success, even when empty.
func (r HistoryResponse) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{r.Success, r.Error})
	}
	history := r.History
	if history == nil {
		history = []ConversationTurn{}
	}
	return json.Marshal(struct {
		Success bool               `json:"success"`
		History []ConversationTurn `json:"history"`
	}{r.Success, history})
}

// LooseString accepts a JSON string, number or boolean and keeps its text form.
// Falsy values (null, "", false, 0) decode to the empty string.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LooseString(v)
	case data[0] == '{' || data[0] == '[':
		text, err := CompactJSON(data)
		if err != nil {
			return err
		}
		*s = LooseString(text)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			if text := NumberText(n); text != "0" {
				*s = LooseString(text)
			} else {
				*s = ""
			}
			return nil
		}
		*s = LooseString(strings.TrimSpace(string(data)))
	}
	return nil
}

func (s LooseString) String() string {
	return string(s)
}
