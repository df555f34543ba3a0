// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package model

import "github.com/haloaistud/friday-tui/internal/gemini"

// ToGeminiHistory converts the conversation into API turn history, used to
// seed a chat session when resuming a saved conversation. Empty and
// still-streaming messages are skipped.
func (c *Conversation) ToGeminiHistory() []gemini.Content {
	history := make([]gemini.Content, 0, len(c.Messages))
	for _, msg := range c.Messages {
		if msg.IsStreaming || msg.IsEmpty() {
			continue
		}
		switch msg.Role {
		case RoleUser:
			history = append(history, gemini.NewUserContent(msg.Text))
		case RoleAssistant:
			history = append(history, gemini.NewModelContent(msg.Text))
		}
	}
	return history
}
