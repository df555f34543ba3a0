// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package storage

import (
	"errors"
	"testing"

	"github.com/haloaistud/friday-tui/internal/model"
)

func testConversation(t *testing.T) *model.Conversation {
	t.Helper()
	conv := model.NewConversation()
	if _, err := conv.AppendUser("what is orbital velocity?", true); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}
	msg := conv.BeginAssistant()
	msg.Text = "About 7.8 km/s in low Earth orbit."
	msg.Sources = []model.Source{{URI: "https://example.com/orbit", Title: "Orbital mechanics"}}
	conv.EndTurn()
	return conv
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, err := NewConversationStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewConversationStoreWithDir: %v", err)
	}

	conv := testConversation(t)
	id, err := store.Save(FromConversation(conv, "gemini-2.5-flash"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", loaded.Model)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(loaded.Messages))
	}
	if !loaded.Messages[0].IsVoice {
		t.Error("voice flag lost on round trip")
	}
	if len(loaded.Messages[1].Sources) != 1 || loaded.Messages[1].Sources[0].URI != "https://example.com/orbit" {
		t.Errorf("sources lost: %+v", loaded.Messages[1].Sources)
	}

	restored := loaded.ToConversation()
	if restored.Len() != 2 {
		t.Errorf("restored length = %d, want 2", restored.Len())
	}
	if restored.InFlight() {
		t.Error("restored conversation should be idle")
	}
	if restored.Messages[1].Role != model.RoleAssistant {
		t.Errorf("restored role = %q", restored.Messages[1].Role)
	}
}

func TestSummaryFromFirstUserMessage(t *testing.T) {
	store, _ := NewConversationStoreWithDir(t.TempDir())

	conv := testConversation(t)
	id, err := store.Save(FromConversation(conv, "m"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, _ := store.Load(id)
	if loaded.Summary != "what is orbital velocity?" {
		t.Errorf("Summary = %q", loaded.Summary)
	}
}

func TestLoadMissing(t *testing.T) {
	store, _ := NewConversationStoreWithDir(t.TempDir())
	if _, err := store.Load("conv_missing"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
	if _, err := store.LoadLatest(); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("LoadLatest on empty store: expected ErrConversationNotFound, got %v", err)
	}
}

func TestListMostRecentFirst(t *testing.T) {
	store, _ := NewConversationStoreWithDir(t.TempDir())

	for _, text := range []string{"oldest", "middle", "newest"} {
		conv := model.NewConversation()
		if _, err := conv.AppendUser(text, false); err != nil {
			t.Fatalf("AppendUser: %v", err)
		}
		if _, err := store.Save(FromConversation(conv, "m")); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("got %d conversations, want 3", len(metas))
	}
	if metas[0].Preview != "newest" {
		t.Errorf("first listed = %q, want newest", metas[0].Preview)
	}

	latest, err := store.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if latest.Messages[0].Content != "newest" {
		t.Errorf("LoadLatest = %q", latest.Messages[0].Content)
	}
}

func TestDeleteAndClear(t *testing.T) {
	store, _ := NewConversationStoreWithDir(t.TempDir())

	conv := testConversation(t)
	id, _ := store.Save(FromConversation(conv, "m"))

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(id); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("second delete: expected ErrConversationNotFound, got %v", err)
	}

	store.Save(FromConversation(testConversation(t), "m"))
	store.Save(FromConversation(testConversation(t), "m"))
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	metas, _ := store.List()
	if len(metas) != 0 {
		t.Errorf("got %d conversations after Clear, want 0", len(metas))
	}
}

func TestEnforceLimit(t *testing.T) {
	store, _ := NewConversationStoreWithDir(t.TempDir())
	store.MaxConversations = 2

	for i := 0; i < 4; i++ {
		conv := model.NewConversation()
		conv.AppendUser("m", false)
		if _, err := store.Save(FromConversation(conv, "m")); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	metas, _ := store.List()
	if len(metas) > 2 {
		t.Errorf("got %d conversations, limit is 2", len(metas))
	}
}
