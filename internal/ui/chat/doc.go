// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Package chat provides the chat view for the Friday TUI.
//
// The view is a standard Bubble Tea model. All conversation mutation
// happens inside Update; streaming and transcription run on command
// goroutines and report back through messages, so the update loop stays
// the single writer.
package chat
