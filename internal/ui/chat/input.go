// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package chat

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haloaistud/friday-tui/internal/memory"
	"github.com/haloaistud/friday-tui/internal/model"
	"github.com/haloaistud/friday-tui/internal/storage"
)

// =============================================================================
// INPUT HANDLING
// =============================================================================

// handleSubmit processes the current input line: slash commands run
// locally, everything else becomes a chat turn.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		return m.handleCommand(text)
	}

	return m.submitMessage(text, false)
}

// submitMessage appends a user message and starts the streamed response.
// Used by both typed and transcribed input.
func (m Model) submitMessage(text string, isVoice bool) (Model, tea.Cmd) {
	_, err := m.conversation.AppendUser(text, isVoice)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTurnInFlight):
			m.lastError = "Friday is still answering. Wait for the response to finish."
		case errors.Is(err, model.ErrEmptyMessage):
			// Nothing to send; keep quiet.
			return m, nil
		default:
			m.lastError = err.Error()
		}
		return m, nil
	}

	m.input.Reset()
	m.lastError = ""

	asst := m.conversation.BeginAssistant()
	m.state = StateStreaming
	m.streamingMsgID = asst.ID
	m.refreshViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, m.startStreamCmd(text, asst.ID))
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleCommand runs a slash command.
func (m Model) handleCommand(text string) (Model, tea.Cmd) {
	fields := strings.Fields(text)
	cmd := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))

	switch cmd {
	case "/clear", "/new":
		return m.clearConversation()

	case "/save":
		return m, m.saveConversationCmd()

	case "/memory", "/remember":
		if arg == "" {
			m.lastError = "Usage: /memory <something to remember>"
			return m, nil
		}
		return m, m.saveMemoryCmd(arg)

	case "/help":
		m.statusMsg = "Enter send | C-r record | /clear | /save | /memory <note> | /quit"
		return m, statusExpireCmd()

	case "/quit", "/exit":
		return m, tea.Quit

	default:
		m.lastError = "Unknown command: " + cmd
		return m, nil
	}
}

// clearConversation wipes the history and resets the model-side session.
func (m Model) clearConversation() (Model, tea.Cmd) {
	if m.cancelStream != nil {
		m.cancelStream()
		m.cancelStream = nil
	}
	m.conversation.Clear()
	m.client.ResetSession()
	m.state = StateReady
	m.streamingMsgID = ""
	m.lastError = ""
	m.statusMsg = "Conversation cleared"
	m.refreshViewport()
	return m, statusExpireCmd()
}

// saveConversationCmd persists the conversation in the background.
func (m Model) saveConversationCmd() tea.Cmd {
	store := m.convStore
	conv := m.conversation
	modelName := m.client.Model()
	return func() tea.Msg {
		if store == nil {
			return ConversationSavedMsg{Err: errors.New("conversation store unavailable")}
		}
		if conv.IsEmpty() {
			return ConversationSavedMsg{Err: errors.New("nothing to save")}
		}
		id, err := store.Save(storage.FromConversation(conv, modelName))
		return ConversationSavedMsg{ID: id, Err: err}
	}
}

// saveMemoryCmd stores a user note in the memory store.
func (m Model) saveMemoryCmd(note string) tea.Cmd {
	store := m.memStore
	return func() tea.Msg {
		if store == nil {
			return MemorySavedMsg{Err: errors.New("memory store unavailable")}
		}
		_, err := store.Add(memory.TypeNote, note)
		return MemorySavedMsg{Err: err}
	}
}
