// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Styles must render without panicking regardless of terminal.
	out := theme.UserBubble.Render("hello")
	if out == "" {
		t.Error("UserBubble rendered empty")
	}
	if theme.Recording.Render("REC") == "" {
		t.Error("Recording rendered empty")
	}
}

func TestSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", theme.Width, theme.Height)
	}
}

func TestVoiceBubbleDerivesFromUserBubble(t *testing.T) {
	theme := NewTheme()
	if theme.VoiceBubble.GetMarginLeft() != theme.UserBubble.GetMarginLeft() {
		t.Error("voice bubble should share the user bubble layout")
	}
}
