package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ChatRole identifies the author of a chat turn.
type ChatRole string

// Possible chat roles
const (
	ChatRoleUser   ChatRole = "user"
	ChatRoleMentor ChatRole = "mentor"
)

// Validation errors for chat requests
var (
	ErrChatTurnEmpty    = errors.New("chat turn must carry text or an image")
	ErrInvalidChatRole  = errors.New("invalid chat role")
	ErrChatMessageEmpty = errors.New("chat message cannot be empty")
)

// ChatTurn is one message in a tutoring conversation. Image, when present,
// holds a base64 payload (optionally a data URL) that was shown alongside
// the text.
type ChatTurn struct {
	Role  ChatRole `json:"role"`
	Text  string   `json:"text"`
	Image string   `json:"image,omitempty"`
}

// Validate checks if the ChatTurn has valid data.
func (t ChatTurn) Validate() error {
	if !isValidChatRole(t.Role) {
		return ErrInvalidChatRole
	}

	if strings.TrimSpace(t.Text) == "" && t.Image == "" {
		return ErrChatTurnEmpty
	}

	return nil
}

// ChatRequest carries the conversation so far plus the learner's new
// message. The new message is always spoken by the learner; an optional
// image rides along with it.
type ChatRequest struct {
	History []ChatTurn `json:"history,omitempty"`
	Message string     `json:"message"`
	Image   string     `json:"image,omitempty"`
}

// Validate checks if the ChatRequest has valid data.
// Returns an error if any field fails validation.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" && r.Image == "" {
		return ErrChatMessageEmpty
	}

	for i, turn := range r.History {
		if err := turn.Validate(); err != nil {
			return fmt.Errorf("history turn %d: %w", i+1, err)
		}
	}

	return nil
}

// isValidChatRole checks if the given role is a valid ChatRole.
func isValidChatRole(r ChatRole) bool {
	switch r {
	case ChatRoleUser, ChatRoleMentor:
		return true
	default:
		return false
	}
}
