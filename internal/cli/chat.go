// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// chat.go - Interactive chat command handler for the friday CLI.
//
// Handles the "friday chat" command which provides a readline-style REPL
// for conversing with Friday without the full TUI.
//
// Interactive commands (during chat):
//   /help, /h           Show available commands
//   /clear, /c          Clear conversation history
//   /model              Show the active model
//   /memory <text>      Save a note to persistent memory
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel current response
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/haloaistud/friday-tui/internal/config"
	"github.com/haloaistud/friday-tui/internal/gemini"
	"github.com/haloaistud/friday-tui/internal/memory"
	"github.com/haloaistud/friday-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}

	cli.LoadHistory()

	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt. Supports history
// navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists command history to file with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ReplSession holds the state for an interactive chat session.
type ReplSession struct {
	Client   *gemini.Client
	MemStore *memory.Store
	Quiet    bool

	StartTime time.Time
	Turns     int

	// Cancel function for the in-flight stream
	CancelFunc context.CancelFunc

	InputCLI *ChatCLI
}

// NewReplSession creates a new chat session from config and CLI args.
func NewReplSession(args Args) (*ReplSession, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := newClientFromConfig(cfg, args)
	if !client.IsConfigured() {
		return nil, fmt.Errorf("no API key configured. Set GEMINI_API_KEY or add it to ~/.friday/config.toml")
	}

	memStore, err := memory.NewStore()
	if err != nil {
		memStore = nil
	}

	return &ReplSession{
		Client:    client,
		MemStore:  memStore,
		Quiet:     args.Quiet,
		StartTime: time.Now(),
		InputCLI:  NewChatCLI(),
	}, nil
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand handles the "chat" command with full interactive support.
func HandleChatCommand(args Args) error {
	session, err := NewReplSession(args)
	if err != nil {
		return err
	}

	if !session.Quiet {
		printWelcome(session)
	}

	defer session.InputCLI.Close()

	// First Ctrl+C during a response cancels it instead of exiting.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for range sigChan {
			if session.CancelFunc != nil {
				session.CancelFunc()
				session.CancelFunc = nil
				fmt.Fprintln(os.Stderr, "\n"+warningStyle.Render("[Cancelled]"))
			}
		}
	}()

	for {
		input, err := session.InputCLI.ReadInput(promptStyle.Render("friday> "))
		if err != nil {
			// Ctrl+C at the prompt, EOF (Ctrl+D), or a read error all
			// end the session gracefully.
			fmt.Println()
			printExitSummary(session)
			return nil
		}

		input = strings.TrimSpace(input)

		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			shouldContinue, err := handleSlashCommand(input, session)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n",
					errorStyle.Render("[Error]"),
					err)
			}
			if !shouldContinue {
				printExitSummary(session)
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printExitSummary(session)
			return nil
		}

		if err := processMessage(session, input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n",
				errorStyle.Render("[Error]"),
				err)
		}
	}
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage streams one exchange to stdout. Deltas print as they
// arrive; sources follow once the answer completes.
func processMessage(session *ReplSession, input string) error {
	ctx, cancel := context.WithCancel(context.Background())
	session.CancelFunc = cancel
	defer func() {
		session.CancelFunc = nil
		cancel()
	}()

	fmt.Println()

	agg := gemini.NewAggregator()
	err := session.Client.Session().SendStream(ctx, input, func(frag gemini.Fragment) {
		fmt.Print(frag.TextDelta)
		agg.Fold(frag)
	})

	fmt.Println()

	if err != nil {
		if ctx.Err() == context.Canceled {
			// Cancelled by Ctrl+C; the partial answer already printed.
			return nil
		}
		return err
	}

	session.Turns++

	snap := agg.Snapshot()
	if len(snap.Sources) > 0 && !session.Quiet {
		printSources(snap.Sources)
	}
	fmt.Println()

	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes an interactive command. Returns false when
// the session should end.
func handleSlashCommand(input string, session *ReplSession) (bool, error) {
	parts := strings.SplitN(input, " ", 2)
	cmd := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch cmd {
	case "/help", "/h":
		printChatHelp()
		return true, nil

	case "/clear", "/c":
		session.Client.ResetSession()
		fmt.Println(infoStyle.Render("Conversation cleared."))
		return true, nil

	case "/model":
		fmt.Printf("%s %s\n", infoStyle.Render("Model:"), session.Client.Model())
		return true, nil

	case "/memory", "/remember":
		if session.MemStore == nil {
			return true, fmt.Errorf("memory store unavailable")
		}
		if arg == "" {
			return true, fmt.Errorf("usage: /memory <text to remember>")
		}
		if _, err := session.MemStore.Add(memory.TypeNote, arg); err != nil {
			return true, err
		}
		fmt.Println(infoStyle.Render("Saved to memory."))
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (try /help)", cmd)
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

// printWelcome shows the session banner.
func printWelcome(session *ReplSession) {
	fmt.Println(welcomeStyle.Render("Friday AI - interactive chat"))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Model:"),
		session.Client.Model())
	fmt.Printf("%s %s\n",
		infoStyle.Render("Commands:"),
		commandStyle.Render("/help /clear /memory /quit"))
	fmt.Println()
}

// printChatHelp lists interactive commands.
func printChatHelp() {
	fmt.Println(infoStyle.Render("Interactive commands:"))
	fmt.Printf("  %s  Show this help\n", commandStyle.Render("/help, /h      "))
	fmt.Printf("  %s  Clear conversation history\n", commandStyle.Render("/clear, /c     "))
	fmt.Printf("  %s  Show the active model\n", commandStyle.Render("/model         "))
	fmt.Printf("  %s  Save a note to persistent memory\n", commandStyle.Render("/memory <text> "))
	fmt.Printf("  %s  Exit chat\n", commandStyle.Render("/quit, /q      "))
}

// printExitSummary shows session statistics on exit.
func printExitSummary(session *ReplSession) {
	if session.Quiet {
		return
	}
	duration := time.Since(session.StartTime).Round(time.Second)
	fmt.Printf("%s %d exchange(s) in %v. Goodbye.\n",
		infoStyle.Render("Session:"),
		session.Turns,
		duration)
}
