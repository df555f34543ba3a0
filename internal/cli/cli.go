// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// cli.go - CLI parsing and command dispatch for friday.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdMemory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet    bool
	Verbose  bool
	Model    string
	NoSearch bool
	Resume   bool

	// Command-specific
	Query      string
	File       string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `friday - voice-enabled AI assistant for the terminal

Friday is a conversational AI assistant powered by the Gemini API.

It provides:
  - Streaming chat with live response rendering
  - Voice input via microphone capture and transcription
  - Web-grounded answers with source citations
  - Persistent memory across sessions

Usage:
  friday                     Start the chat TUI (default)
  friday --resume            Start the TUI with the latest conversation
  friday ask "question"      Ask a single question and exit
  friday chat                Interactive chat in the terminal
  friday memory [subcommand] Manage persistent memory
  friday version             Show version information
  friday help                Show this help

Ask Command:
  friday ask "What is the speed of light?"
  friday ask "Review this:" --file main.go
  cat error.log | friday ask "Explain this error"
    -f, --file FILE          Include file content with the question
    -m, --model NAME         Use a specific Gemini model
    --no-search              Disable web search grounding

Memory Commands:
  friday memory list         List saved memory entries
  friday memory add "text"   Save a note to memory
  friday memory delete <id>  Delete a memory entry
  friday memory clear        Delete all memory entries

Global Flags:
  -m, --model NAME           Override the configured model
  -q, --quiet                Minimal output
  -v, --verbose              Verbose output
  --no-search                Disable web search grounding

Environment:
  GEMINI_API_KEY             Gemini API key
  FRIDAY_API_KEY             Overrides GEMINI_API_KEY
  FRIDAY_MODEL               Overrides the configured model
  FRIDAY_VOICE               Enable/disable voice input (true/false)

Configuration:
  ~/.friday/config.toml      Settings file (created on first save)
  ~/.friday/conversations/   Saved conversations
  ~/.friday/memory.json      Persistent memory

Keyboard (TUI):
  Enter                      Send message
  Ctrl+R                     Start/stop voice capture
  Esc                        Cancel response or recording
  Ctrl+S                     Save conversation
  Ctrl+L                     Clear conversation
  Ctrl+C                     Quit
`

// Parse parses os.Args and returns the command to run plus its arguments.
func Parse() (Command, Args) {
	args := os.Args[1:]

	// Global flags first
	remaining, parsedArgs := parseGlobalFlags(args)

	// No remaining args: default to the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "memory", "mem":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
			parsedArgs.Raw = remaining[1:]
		}
		return CmdMemory, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: treat the whole line as a question.
		parseAskArgs(&parsedArgs, append([]string{cmd}, remaining...))
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--verbose":
			parsedArgs.Verbose = true
		case "--no-search":
			parsedArgs.NoSearch = true
		case "-r", "--resume":
			parsedArgs.Resume = true
		case "-m", "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments. Positional args are
// joined into the query.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-f", "--file":
			if i+1 < len(remaining) {
				i++
				args.File = remaining[i]
			}
		case "-m", "--model":
			if i+1 < len(remaining) {
				i++
				args.Model = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--file=") {
				args.File = strings.TrimPrefix(arg, "--file=")
			} else if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			} else if !strings.HasPrefix(arg, "-") {
				query = append(query, arg)
			}
		}
		i++
	}

	args.Query = strings.Join(query, " ")
}

// PrintUsage writes the top-level usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("friday %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
