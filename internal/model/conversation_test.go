// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/haloaistud/friday-tui/internal/gemini"
)

func TestAppendUserRejectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"spaces only", "   "},
		{"tabs and newlines", "\t\n \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation()
			_, err := conv.AppendUser(tt.text, false)
			if !errors.Is(err, ErrEmptyMessage) {
				t.Errorf("expected ErrEmptyMessage, got %v", err)
			}
			if conv.Len() != 0 {
				t.Errorf("conversation changed on rejected submission: %d messages", conv.Len())
			}
		})
	}
}

func TestAppendUserRejectsWhileInFlight(t *testing.T) {
	conv := NewConversation()
	if _, err := conv.AppendUser("first question", false); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}
	conv.BeginAssistant()

	before := conv.Len()
	_, err := conv.AppendUser("second question", false)
	if !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("expected ErrTurnInFlight, got %v", err)
	}
	if conv.Len() != before {
		t.Errorf("conversation changed on rejected submission: %d -> %d", before, conv.Len())
	}

	conv.EndTurn()
	if _, err := conv.AppendUser("second question", false); err != nil {
		t.Errorf("submission after EndTurn should succeed, got %v", err)
	}
}

func TestTurnLifecycle(t *testing.T) {
	conv := NewConversation()
	if _, err := conv.AppendUser("hello", false); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}

	msg := conv.BeginAssistant()
	if !conv.InFlight() {
		t.Fatal("expected conversation in flight after BeginAssistant")
	}
	if !msg.IsStreaming {
		t.Error("expected new assistant message to be streaming")
	}

	snap := gemini.Snapshot{
		Text: "partial",
		Sources: []gemini.Citation{
			{URI: "https://example.com/a", Title: "A"},
		},
	}
	if err := conv.ApplySnapshot(msg.ID, snap); err != nil {
		t.Fatalf("ApplySnapshot: %v", err)
	}
	if msg.Text != "partial" {
		t.Errorf("Text = %q, want %q", msg.Text, "partial")
	}
	if len(msg.Sources) != 1 || msg.Sources[0].URI != "https://example.com/a" {
		t.Errorf("unexpected sources: %+v", msg.Sources)
	}

	// Later snapshot fully replaces the earlier one.
	snap2 := gemini.Snapshot{
		Text: "partial and more",
		Sources: []gemini.Citation{
			{URI: "https://example.com/a", Title: "A"},
			{URI: "https://example.com/b", Title: "B"},
		},
	}
	if err := conv.ApplySnapshot(msg.ID, snap2); err != nil {
		t.Fatalf("ApplySnapshot: %v", err)
	}
	if msg.Text != "partial and more" {
		t.Errorf("Text = %q, want %q", msg.Text, "partial and more")
	}
	if len(msg.Sources) != 2 {
		t.Errorf("got %d sources, want 2", len(msg.Sources))
	}

	conv.EndTurn()
	if conv.InFlight() {
		t.Error("expected idle conversation after EndTurn")
	}
	if msg.IsStreaming {
		t.Error("expected message finalized after EndTurn")
	}

	if err := conv.ApplySnapshot(msg.ID, snap); !errors.Is(err, ErrNotStreaming) {
		t.Errorf("snapshot after finalize: expected ErrNotStreaming, got %v", err)
	}
}

func TestApplySnapshotUnknownID(t *testing.T) {
	conv := NewConversation()
	conv.BeginAssistant()
	err := conv.ApplySnapshot("msg_99999999", gemini.Snapshot{Text: "x"})
	if !errors.Is(err, ErrNoSuchMessage) {
		t.Errorf("expected ErrNoSuchMessage, got %v", err)
	}
}

func TestStreamFailurePreservesPartialText(t *testing.T) {
	conv := NewConversation()
	if _, err := conv.AppendUser("question", false); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}
	msg := conv.BeginAssistant()
	if err := conv.ApplySnapshot(msg.ID, gemini.Snapshot{Text: "partial answer"}); err != nil {
		t.Fatalf("ApplySnapshot: %v", err)
	}

	before := conv.Len()

	// Transport failure: finalize the partial message, then report the
	// error as a separate assistant message.
	conv.EndTurn()
	errMsg := conv.AppendAssistantError("Error: connection reset")

	if conv.Len() != before+1 {
		t.Errorf("length = %d, want %d", conv.Len(), before+1)
	}
	if msg.Text != "partial answer" {
		t.Errorf("partial text overwritten: %q", msg.Text)
	}
	if errMsg.Role != RoleAssistant {
		t.Errorf("error message role = %q, want assistant", errMsg.Role)
	}
	if errMsg.IsStreaming {
		t.Error("error message should not be streaming")
	}
	if conv.InFlight() {
		t.Error("conversation should be idle after failure handling")
	}
	if conv.LastMessage().ID != errMsg.ID {
		t.Error("error message should be the last message")
	}
}

func TestMessageIDsMonotonic(t *testing.T) {
	conv := NewConversation()
	var ids []string
	for i := 0; i < 5; i++ {
		msg, err := conv.AppendUser("message", false)
		if err != nil {
			t.Fatalf("AppendUser: %v", err)
		}
		ids = append(ids, msg.ID)
		asst := conv.BeginAssistant()
		ids = append(ids, asst.ID)
		conv.EndTurn()
	}
	for i := 1; i < len(ids); i++ {
		if !(ids[i-1] < ids[i]) {
			t.Errorf("ids not monotonic: %q !< %q", ids[i-1], ids[i])
		}
	}
}

func TestClear(t *testing.T) {
	conv := NewConversation()
	if _, err := conv.AppendUser("hello", false); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}
	conv.BeginAssistant()
	conv.Clear()

	if !conv.IsEmpty() {
		t.Error("expected empty conversation after Clear")
	}
	if conv.InFlight() {
		t.Error("expected idle conversation after Clear")
	}
	if _, err := conv.AppendUser("fresh start", false); err != nil {
		t.Errorf("submission after Clear should succeed, got %v", err)
	}
}

func TestPruneKeepsRecent(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < MaxMessages+10; i++ {
		if _, err := conv.AppendUser("m", false); err != nil {
			t.Fatalf("AppendUser: %v", err)
		}
	}
	if conv.Len() != MaxMessages {
		t.Errorf("length = %d, want %d", conv.Len(), MaxMessages)
	}
}

func TestFirstUserMessage(t *testing.T) {
	conv := NewConversation()
	if conv.FirstUserMessage() != nil {
		t.Error("expected nil on empty conversation")
	}
	first, _ := conv.AppendUser("topic opener", false)
	conv.BeginAssistant()
	conv.EndTurn()
	if got := conv.FirstUserMessage(); got == nil || got.ID != first.ID {
		t.Errorf("FirstUserMessage = %+v, want %q", got, first.ID)
	}
}

func TestPreview(t *testing.T) {
	msg := &Message{Text: strings.Repeat("a", 100)}
	got := msg.Preview(10)
	if len([]rune(got)) > 13 {
		t.Errorf("preview too long: %q", got)
	}
}
