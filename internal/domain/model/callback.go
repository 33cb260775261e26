package model

import "strings"

type CallbackAdmin struct {
	UserID    int64
	Username  string
	FirstName string
}

// DisplayName prefers "@username" and falls back to the first name.
func (a CallbackAdmin) DisplayName() string {
	if username := strings.TrimSpace(a.Username); username != "" {
		return "@" + username
	}
	return a.FirstName
}

// CallbackEvent is the part of a bot callback query the moderation flow uses.
// HasMessage is false for callbacks from inline-mode messages, which carry no chat.
type CallbackEvent struct {
	CallbackID  string
	Data        string
	Admin       CallbackAdmin
	HasMessage  bool
	ChatID      int64
	MessageID   int
	MessageText string
}
