// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// ask.go - Single query command handler for the friday CLI.
//
// Handles the "friday ask" command which sends one question to the
// Gemini API and prints the answer to stdout.
//
// Examples:
//   friday ask "What is the capital of France?"
//   friday ask "Review this code:" --file main.go
//   cat error.log | friday ask "Explain this error"
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/haloaistud/friday-tui/internal/config"
	"github.com/haloaistud/friday-tui/internal/gemini"
	"github.com/haloaistud/friday-tui/internal/memory"
	"github.com/haloaistud/friday-tui/internal/ui/styles"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// MaxFileSize is the maximum file size to include with a question (50KB).
	MaxFileSize = 50 * 1024

	// askTimeout bounds a single non-interactive request.
	askTimeout = 2 * time.Minute
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or the renderer is
// unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a response, using markdown rendering only when
// stdout is a TTY so piped output stays clean.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Print(response)
	}
}

// =============================================================================
// STYLES
// =============================================================================

var (
	infoLabelStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan)

	separatorStyle = lipgloss.NewStyle().
			Foreground(styles.Overlay)

	sourceTitleStyle = lipgloss.NewStyle().
				Foreground(styles.TextSecondary)

	sourceURIStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Red)
)

// =============================================================================
// FILE READING
// =============================================================================

// readFileForContext reads a file and formats it for inclusion in a prompt.
// Files larger than MaxFileSize are rejected.
func readFileForContext(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("cannot access file: %w", err)
	}

	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d bytes)", info.Size(), MaxFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("\n--- File: %s ---\n", path))
	builder.Write(content)
	builder.WriteString("\n--- End of file ---\n")

	return builder.String(), nil
}

// =============================================================================
// CLIENT SETUP
// =============================================================================

// newClientFromConfig builds a Gemini client from config plus CLI overrides.
// Persistent memory is included in the system instruction when available.
func newClientFromConfig(cfg *config.Config, args Args) *gemini.Client {
	model := args.Model
	if model == "" {
		model = cfg.Gemini.Model
	}

	instruction := SystemInstruction()
	if store, err := memory.NewStore(); err == nil {
		if memCtx, err := store.Context(); err == nil && memCtx != "" {
			instruction = instruction + "\n\n" + memCtx
		}
	}

	return gemini.NewClient(cfg.Gemini.APIKey).
		WithModel(model).
		WithSystemInstruction(instruction).
		WithSearchGrounding(cfg.Gemini.SearchGrounding && !args.NoSearch)
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAskCommand handles the "ask" command: one question, one answer.
func HandleAskCommand(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	question := args.Query

	// No question on the command line: try reading from stdin (piped input).
	if question == "" && !IsStdinTTY() {
		reader := bufio.NewReader(os.Stdin)
		stdinData, err := io.ReadAll(reader)
		if err == nil && len(stdinData) > 0 {
			question = strings.TrimSpace(string(stdinData))
			if !args.Quiet {
				fmt.Fprintf(os.Stderr, "%s Read question from stdin (%d bytes)\n",
					infoLabelStyle.Render("[+]"),
					len(stdinData))
			}
		}
	}

	if question == "" {
		return fmt.Errorf("no question provided. Usage: friday ask \"your question\"")
	}

	// Append file content when requested.
	if args.File != "" {
		fileContent, err := readFileForContext(args.File)
		if err != nil {
			return err
		}
		question = question + "\n" + fileContent

		if !args.Quiet {
			fmt.Fprintf(os.Stderr, "%s Including file: %s\n",
				infoLabelStyle.Render("[+]"),
				args.File)
		}
	}

	client := newClientFromConfig(cfg, args)
	if !client.IsConfigured() {
		return fmt.Errorf("no API key configured. Set GEMINI_API_KEY or add it to ~/.friday/config.toml")
	}

	if !args.Quiet {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			infoLabelStyle.Render("Model:"),
			client.Model())
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	// On a TTY the whole answer is rendered as markdown at once, so a
	// single non-streaming call suffices. Pipes get deltas as they arrive.
	useMarkdown := IsStdoutTTY()

	startTime := time.Now()
	var snap gemini.Snapshot

	if useMarkdown {
		resp, err := client.Generate(ctx, question)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		snap = gemini.Snapshot{Text: resp.TextDelta(), Sources: resp.Citations()}
		displayResponse(snap.Text)
	} else {
		agg := gemini.NewAggregator()
		err = client.Session().SendStream(ctx, question, func(frag gemini.Fragment) {
			agg.Fold(frag)
			fmt.Print(frag.TextDelta)
		})
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		snap = agg.Snapshot()
	}
	duration := time.Since(startTime)
	fmt.Println()

	// Numbered source list when grounding returned citations.
	if len(snap.Sources) > 0 && !args.Quiet {
		printSources(snap.Sources)
	}

	if args.Verbose {
		separator := strings.Repeat("─", 45)
		fmt.Fprintln(os.Stderr, separatorStyle.Render(separator))
		fmt.Fprintf(os.Stderr, "%s %v\n",
			sourceTitleStyle.Render("Time:"),
			duration.Round(time.Millisecond))
	}

	return nil
}

// printSources writes a numbered citation list to stderr.
func printSources(sources []gemini.Citation) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, infoLabelStyle.Render("Sources:"))
	for i, src := range sources {
		title := src.Title
		if title == "" {
			title = src.URI
		}
		fmt.Fprintf(os.Stderr, "  %d. %s\n     %s\n",
			i+1,
			sourceTitleStyle.Render(title),
			sourceURIStyle.Render(src.URI))
	}
}
