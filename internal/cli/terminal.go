// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// terminal.go - TTY detection helpers for the CLI.
package cli

import (
	"os"

	"golang.org/x/term"
)

// IsStdoutTTY returns true if stdout is a terminal.
// Markdown rendering and colors are only used on a TTY so piped
// output stays clean.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStdinTTY returns true if stdin is a terminal.
func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
