// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/haloaistud/friday-tui/internal/model"
	"github.com/haloaistud/friday-tui/internal/voice"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.viewport.View())
	sections = append(sections, m.renderInput())
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title bar.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("FRIDAY")
	subtitle := m.theme.HeaderSubtitle.Render(" // " + m.client.Model())
	return m.theme.Header.Width(max(0, m.width-2)).Render(title + subtitle)
}

// refreshViewport re-renders the conversation into the viewport.
func (m *Model) refreshViewport() {
	m.ensureMarkdownRenderer()
	m.viewport.SetContent(m.renderConversation())
}

// ensureMarkdownRenderer (re)builds the glamour renderer when the layout
// width changes. Renderer construction is not cheap, so it is cached.
func (m *Model) ensureMarkdownRenderer() {
	width := max(20, m.width-10)
	if m.mdRenderer != nil && m.mdWidth == width {
		return
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(10, width-6)),
	)
	if err != nil {
		m.mdRenderer = nil
		return
	}
	m.mdRenderer = renderer
	m.mdWidth = width
}

// renderMarkdown renders finalized assistant text. Falls back to the raw
// text when the renderer is unavailable or fails.
func (m Model) renderMarkdown(text string) string {
	if m.mdRenderer == nil {
		return text
	}
	rendered, err := m.mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}

// renderConversation renders all messages.
func (m Model) renderConversation() string {
	if m.conversation.IsEmpty() {
		return m.theme.Thinking.Render("\n  Say something, or press Ctrl+R to talk.\n")
	}

	var sb strings.Builder
	for _, msg := range m.conversation.Messages {
		sb.WriteString(m.renderMessage(msg))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderMessage renders a single message with its label, body, and
// source list.
func (m Model) renderMessage(msg *model.Message) string {
	width := max(20, m.width-10)

	var label, body string
	switch msg.Role {
	case model.RoleUser:
		label = m.theme.UserLabel.Render(msg.Role.DisplayName())
		if msg.IsVoice {
			label += " " + m.theme.VoiceBadge.Render("[voice]")
		}
		bubble := m.theme.UserBubble
		if msg.IsVoice {
			bubble = m.theme.VoiceBubble
		}
		body = bubble.Width(width).Render(msg.Text)

	case model.RoleAssistant:
		label = m.theme.AssistantLabel.Render(msg.Role.DisplayName())
		isError := strings.HasPrefix(msg.Text, "Error:")
		text := msg.Text
		switch {
		case msg.IsStreaming && text == "":
			text = m.spinner.View() + " thinking..."
		case msg.IsStreaming:
			// Markdown waits until the message is final; partial
			// markup renders badly.
			text += " ▋"
		case !isError:
			text = m.renderMarkdown(text)
		}
		bubble := m.theme.AssistantBubble
		if isError {
			bubble = m.theme.ErrorBubble
		}
		body = bubble.Width(width).Render(text)
	}

	out := label
	if m.showTimestamps {
		out += " " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}
	out += "\n" + body

	if m.showSources && msg.HasSources() {
		out += "\n" + m.renderSources(msg)
	}
	return out
}

// renderSources renders the citation list under a grounded answer.
func (m Model) renderSources(msg *model.Message) string {
	var sb strings.Builder
	sb.WriteString(m.theme.SourcesHeader.Render("  Sources:"))
	for i, src := range msg.Sources {
		sb.WriteString("\n")
		title := src.Title
		if title == "" {
			title = src.URI
		}
		sb.WriteString(fmt.Sprintf("  %d. %s\n     %s",
			i+1,
			m.theme.SourceTitle.Render(title),
			m.theme.SourceURI.Render(src.URI),
		))
	}
	return sb.String()
}

// renderInput renders the input box.
func (m Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")
	return m.theme.InputContainer.Width(max(0, m.width-2)).Render(prompt + m.input.View())
}

// renderStatusBar renders the bottom status line: recording indicator,
// transient status or error, and key hints.
func (m Model) renderStatusBar() string {
	if m.lastError != "" {
		return m.theme.ErrorTitle.Render(" " + m.lastError)
	}
	if m.statusMsg != "" {
		return m.theme.StatusBar.Render(" " + m.statusMsg)
	}

	if m.bridge != nil {
		switch m.bridge.State() {
		case voice.StateRecording:
			elapsed := int(m.bridge.Elapsed().Seconds())
			return m.theme.Recording.Render(fmt.Sprintf(" ● REC %d:%02d  (Ctrl+R to stop, Esc to discard)", elapsed/60, elapsed%60))
		case voice.StateTranscribing:
			return m.theme.Transcribing.Render(" … transcribing")
		}
	}

	if m.state == StateStreaming {
		return m.theme.Thinking.Render(" " + m.spinner.View() + " Friday is answering...")
	}

	var hints []string
	for _, b := range m.keyMap.ShortHelp() {
		hints = append(hints,
			m.theme.ShortcutKey.Render(b.Help().Key)+" "+m.theme.ShortcutDesc.Render(b.Help().Desc))
	}
	return m.theme.StatusBar.Render(" " + strings.Join(hints, "  "))
}
