// Friday AI - a voice-enabled terminal assistant powered by Gemini.
//
// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haloaistud/friday-tui/internal/cli"
	"github.com/haloaistud/friday-tui/internal/config"
	"github.com/haloaistud/friday-tui/internal/gemini"
	"github.com/haloaistud/friday-tui/internal/memory"
	"github.com/haloaistud/friday-tui/internal/storage"
	"github.com/haloaistud/friday-tui/internal/ui/chat"
	"github.com/haloaistud/friday-tui/internal/ui/styles"
	"github.com/haloaistud/friday-tui/internal/util"
	"github.com/haloaistud/friday-tui/internal/voice"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async streaming
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		if err := cli.HandleAskCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdChat:
		if err := cli.HandleChatCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdMemory:
		if err := cli.HandleMemoryCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI(args)
	}
}

// sendToProgram delivers a message into the running program from outside
// the update loop. Safe to call before the program exists.
func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// runTUI starts the TUI interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// CLI args override config
	if args.Model != "" {
		cfg.Gemini.Model = args.Model
	}
	if args.NoSearch {
		cfg.Gemini.SearchGrounding = false
	}

	// Persistent memory feeds the system instruction so Friday recalls
	// earlier sessions.
	memStore, memErr := memory.NewStore()
	instruction := cli.SystemInstruction()
	if memErr == nil {
		if memCtx, err := memStore.Context(); err == nil && memCtx != "" {
			instruction = instruction + "\n\n" + memCtx
		}
	}

	client := gemini.NewClient(cfg.Gemini.APIKey).
		WithModel(cfg.Gemini.Model).
		WithSystemInstruction(instruction).
		WithSearchGrounding(cfg.Gemini.SearchGrounding)

	// Voice capture is wired only when enabled; the chat view degrades
	// gracefully without it.
	var bridge *voice.Bridge
	if cfg.Voice.Enabled {
		bridge = voice.NewBridge(voice.NewExecRecorder(), client)
	}

	theme := styles.NewTheme()

	m := newAppModel(chat.New(theme, client, bridge, cfg))

	convStore, convErr := storage.NewConversationStore()
	if convErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: conversation persistence unavailable: %v\n", convErr)
		convStore = nil
	}
	if memErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: memory store unavailable: %v\n", memErr)
		memStore = nil
	}
	m.chat.SetStores(convStore, memStore)

	// Pick up where the last session left off when asked.
	if args.Resume && convStore != nil {
		if stored, err := convStore.LoadLatest(); err == nil && stored != nil {
			m.chat.Resume(stored.ToConversation())
		}
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Store program reference for async operations
	programMu.Lock()
	programRef = p
	programMu.Unlock()

	m.chat.SetSender(sendToProgram)

	// Live config reload: edits to ~/.friday/config.toml apply without a
	// restart.
	if watcher, err := config.Watch(func(next *config.Config) {
		sendToProgram(chat.ConfigReloadedMsg{Config: next})
	}); err == nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running friday: %v\n", err)
		os.Exit(1)
	}

	// Persist the conversation on exit so the next session can resume it,
	// and note it in memory so Friday can refer back to it.
	conv := m.chat.Conversation()
	if conv == nil || conv.IsEmpty() {
		return
	}
	if convStore != nil {
		if _, err := convStore.Save(storage.FromConversation(conv, client.Model())); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save conversation: %v\n", err)
		}
	}
	if memStore != nil {
		if first := conv.FirstUserMessage(); first != nil {
			summary := util.OneLine(util.TruncateRunes(first.Text, 80))
			if _, err := memStore.Add(memory.TypeConversation, "We talked about: "+summary); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not record conversation in memory: %v\n", err)
			}
		}
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// appModel is the root Bubble Tea model. It delegates everything to the
// chat view; it exists so the chat model can keep its concrete Update
// signature.
type appModel struct {
	chat chat.Model
}

func newAppModel(c chat.Model) *appModel {
	return &appModel{chat: c}
}

// Init implements tea.Model.
func (a *appModel) Init() tea.Cmd {
	return a.chat.Init()
}

// Update implements tea.Model.
func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.chat.Update(msg)
	a.chat = next
	return a, cmd
}

// View implements tea.Model.
func (a *appModel) View() string {
	return a.chat.View()
}
