// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// persona.go - Shared assistant persona for all entry points.
package cli

// defaultPersona is the system instruction sent with every conversation.
const defaultPersona = "You are FRIDAY, a highly advanced AI assistant. " +
	"Respond intelligently, concisely, and helpfully. " +
	"Use external search grounding when relevant."

// SystemInstruction returns the persona prompt used by the TUI, chat, and
// ask entry points.
func SystemInstruction() string {
	return defaultPersona
}
