// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haloaistud/friday-tui/internal/gemini"
	"github.com/haloaistud/friday-tui/internal/voice"
)

// statusDisplayTime is how long transient status lines stay visible.
const statusDisplayTime = 4 * time.Second

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// startStreamCmd streams the model's answer for a submitted message.
// Fragments are folded into cumulative snapshots and delivered through
// the program sender in arrival order; the command's own return value is
// the terminal completion or error message.
func (m *Model) startStreamCmd(text, messageID string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelStream = cancel

	session := m.client.Session()
	send := m.send

	return func() tea.Msg {
		defer cancel()

		agg := gemini.NewAggregator()
		err := session.SendStream(ctx, text, func(frag gemini.Fragment) {
			send(StreamFragmentMsg{
				MessageID: messageID,
				Snapshot:  agg.Fold(frag),
			})
		})
		if err != nil {
			return StreamErrorMsg{MessageID: messageID, Err: err}
		}
		return StreamCompleteMsg{MessageID: messageID}
	}
}

// startVoiceCmd begins audio capture.
func (m *Model) startVoiceCmd() tea.Cmd {
	bridge := m.bridge
	return func() tea.Msg {
		if err := bridge.Start(); err != nil {
			return VoiceErrorMsg{Err: err}
		}
		return VoiceStartedMsg{}
	}
}

// stopVoiceCmd stops the capture and transcribes it.
func (m *Model) stopVoiceCmd() tea.Cmd {
	bridge := m.bridge
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		text, err := bridge.StopAndTranscribe(ctx)
		return TranscriptionDoneMsg{Text: text, Err: err}
	}
}

// statusExpireCmd clears the status line after a delay.
func statusExpireCmd() tea.Cmd {
	return tea.Tick(statusDisplayTime, func(time.Time) tea.Msg {
		return statusExpireMsg{}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamFragmentMsg:
		if msg.MessageID != m.streamingMsgID {
			return m, nil
		}
		if err := m.conversation.ApplySnapshot(msg.MessageID, msg.Snapshot); err == nil {
			m.refreshViewport()
			m.viewport.GotoBottom()
		}
		return m, nil

	case StreamCompleteMsg:
		if msg.MessageID != m.streamingMsgID {
			return m, nil
		}
		m.conversation.EndTurn()
		m.state = StateReady
		m.streamingMsgID = ""
		m.cancelStream = nil
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case StreamErrorMsg:
		if msg.MessageID != m.streamingMsgID {
			return m, nil
		}
		// The partial answer stays; the failure arrives as its own
		// assistant message.
		m.conversation.EndTurn()
		m.conversation.AppendAssistantError(errorText(msg.Err))
		m.state = StateReady
		m.streamingMsgID = ""
		m.cancelStream = nil
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case VoiceStartedMsg:
		return m, voice.TickCmd()

	case voice.TickMsg:
		if m.bridge != nil && m.bridge.Recording() {
			return m, voice.TickCmd()
		}
		return m, nil

	case VoiceErrorMsg:
		m.lastError = errorText(msg.Err)
		return m, nil

	case TranscriptionDoneMsg:
		if msg.Err != nil {
			m.lastError = errorText(msg.Err)
			return m, nil
		}
		// Transcribed speech enters the same path as typed input.
		return m.submitMessage(msg.Text, true)

	case ConversationSavedMsg:
		if msg.Err != nil {
			m.lastError = "Save failed: " + msg.Err.Error()
		} else {
			m.statusMsg = "Conversation saved (" + msg.ID + ")"
			return m, statusExpireCmd()
		}
		return m, nil

	case MemorySavedMsg:
		if msg.Err != nil {
			m.lastError = "Memory not saved: " + msg.Err.Error()
		} else {
			m.statusMsg = "Noted. Friday will remember that."
			return m, statusExpireCmd()
		}
		return m, nil

	case ClearConversationMsg:
		return m.clearConversation()

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.ApplyConfig(msg.Config)
		}
		return m, nil

	case statusExpireMsg:
		m.statusMsg = ""
		return m, nil

	case ErrorDismissMsg:
		m.lastError = ""
		return m, nil

	case spinner.TickMsg:
		if m.state != StateStreaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateComponents(msg)
}

// handleKey routes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Voice):
		return m.handleVoiceKey()

	case key.Matches(msg, m.keyMap.Cancel):
		return m.handleCancel()

	case key.Matches(msg, m.keyMap.Clear):
		return m.clearConversation()

	case key.Matches(msg, m.keyMap.Save):
		return m, m.saveConversationCmd()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	return m.updateComponents(msg)
}

// handleVoiceKey toggles audio capture.
func (m Model) handleVoiceKey() (Model, tea.Cmd) {
	if !m.voiceEnabled || m.bridge == nil {
		m.lastError = "Voice capture is disabled"
		return m, nil
	}
	if m.state == StateStreaming {
		m.lastError = "Friday is still answering. Wait for the response to finish."
		return m, nil
	}

	switch m.bridge.State() {
	case voice.StateRecording:
		return m, m.stopVoiceCmd()
	case voice.StateTranscribing:
		m.lastError = "Still transcribing the last capture"
		return m, nil
	default:
		m.lastError = ""
		return m, m.startVoiceCmd()
	}
}

// handleCancel aborts the in-flight stream or capture, otherwise clears
// the error line.
func (m Model) handleCancel() (Model, tea.Cmd) {
	if m.bridge != nil && m.bridge.Recording() {
		m.bridge.Cancel()
		m.statusMsg = "Recording discarded"
		return m, statusExpireCmd()
	}
	if m.state == StateStreaming && m.cancelStream != nil {
		m.cancelStream()
		return m, nil
	}
	m.lastError = ""
	return m, nil
}

// updateComponents forwards messages to the focused bubbles.
func (m Model) updateComponents(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// errorText renders an error for display, with friendlier wording for the
// known failure classes.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, gemini.ErrNotConfigured) {
		return "Error: no API key configured. Set FRIDAY_API_KEY or add it to ~/.friday/config.toml."
	}
	if errors.Is(err, context.Canceled) {
		return "Error: response cancelled."
	}
	return "Error: " + err.Error()
}
