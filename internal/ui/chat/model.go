// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/haloaistud/friday-tui/internal/config"
	"github.com/haloaistud/friday-tui/internal/gemini"
	"github.com/haloaistud/friday-tui/internal/memory"
	"github.com/haloaistud/friday-tui/internal/model"
	"github.com/haloaistud/friday-tui/internal/storage"
	"github.com/haloaistud/friday-tui/internal/ui/styles"
	"github.com/haloaistud/friday-tui/internal/voice"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady     State = iota // Ready for input
	StateStreaming              // Receiving a streamed response
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	conversation *model.Conversation

	// Current streaming turn
	streamingMsgID string
	cancelStream   func()

	// Gemini client
	client *gemini.Client

	// Voice capture
	bridge       *voice.Bridge
	voiceEnabled bool

	// Persistence
	convStore *storage.ConversationStore
	memStore  *memory.Store

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Display options
	showSources    bool
	showTimestamps bool

	// Transient error and status lines
	lastError string
	statusMsg string

	// Markdown renderer for finalized assistant messages, rebuilt when
	// the width changes.
	mdRenderer *glamour.TermRenderer
	mdWidth    int

	// send delivers messages from stream goroutines into the program
	// loop. Set by the root model once the program exists.
	send func(tea.Msg)
}

// New creates a chat model.
func New(theme *styles.Theme, client *gemini.Client, bridge *voice.Bridge, cfg *config.Config) Model {
	input := textinput.New()
	input.Placeholder = "Ask Friday anything..."
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		state:          StateReady,
		theme:          theme,
		conversation:   model.NewConversation(),
		client:         client,
		bridge:         bridge,
		voiceEnabled:   cfg.Voice.Enabled,
		viewport:       viewport.New(0, 0),
		input:          input,
		spinner:        sp,
		keyMap:         DefaultKeyMap(),
		showSources:    cfg.UI.ShowSources,
		showTimestamps: cfg.UI.ShowTimestamps,
		send:           func(tea.Msg) {},
	}
}

// SetSender wires the program's Send function, used by stream goroutines
// to deliver fragments into the update loop.
func (m *Model) SetSender(send func(tea.Msg)) {
	if send != nil {
		m.send = send
	}
}

// SetStores attaches the persistence stores.
func (m *Model) SetStores(conv *storage.ConversationStore, mem *memory.Store) {
	m.convStore = conv
	m.memStore = mem
}

// Conversation exposes the conversation, used on shutdown to save it.
func (m *Model) Conversation() *model.Conversation {
	return m.conversation
}

// Resume replaces the conversation with a restored one and seeds the chat
// session so the model keeps its context.
func (m *Model) Resume(conv *model.Conversation) {
	m.conversation = conv
	m.client.Session().SeedHistory(conv.ToGeminiHistory())
}

// ApplyConfig applies a freshly loaded configuration. Called when the
// config file changes on disk; the in-flight turn is not touched.
func (m *Model) ApplyConfig(cfg *config.Config) {
	m.voiceEnabled = cfg.Voice.Enabled
	m.showSources = cfg.UI.ShowSources
	m.showTimestamps = cfg.UI.ShowTimestamps
	if cfg.Gemini.Model != "" {
		m.client.WithModel(cfg.Gemini.Model)
	}
	m.client.WithSearchGrounding(cfg.Gemini.SearchGrounding)
	m.refreshViewport()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3
	inputHeight := 3
	statusHeight := 1
	m.viewport.Width = width
	m.viewport.Height = max(1, height-headerHeight-inputHeight-statusHeight)
	m.input.Width = max(10, width-6)
	m.refreshViewport()
}
