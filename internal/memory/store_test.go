// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package memory

import (
	"path/filepath"
	"strings"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStoreWithPath(filepath.Join(t.TempDir(), "memory.json"))
	if err != nil {
		t.Fatalf("NewStoreWithPath: %v", err)
	}
	return store
}

func TestLoadMissingFile(t *testing.T) {
	store := testStore(t)
	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestAddAndLoad(t *testing.T) {
	store := testStore(t)

	first, err := store.Add(TypeNote, "the user likes short answers")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first == nil || first.ID == "" {
		t.Fatal("expected entry with ID")
	}
	if _, err := store.Add(TypeConversation, "talked about orbital mechanics"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Oldest first.
	if entries[0].Content != "the user likes short answers" {
		t.Errorf("entries[0] = %q", entries[0].Content)
	}
	if entries[1].Type != TypeConversation {
		t.Errorf("entries[1].Type = %q", entries[1].Type)
	}
}

func TestAddIgnoresEmptyContent(t *testing.T) {
	store := testStore(t)
	entry, err := store.Add(TypeNote, "   \n ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil entry for empty content, got %+v", entry)
	}
	entries, _ := store.Load()
	if len(entries) != 0 {
		t.Errorf("store should stay empty, got %d entries", len(entries))
	}
}

func TestAddNormalizesUnknownType(t *testing.T) {
	store := testStore(t)
	entry, err := store.Add("bogus", "content")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if entry.Type != TypeNote {
		t.Errorf("Type = %q, want %q", entry.Type, TypeNote)
	}
}

func TestDelete(t *testing.T) {
	store := testStore(t)
	keep, _ := store.Add(TypeNote, "keep")
	drop, _ := store.Add(TypeNote, "drop")

	if err := store.Delete(drop.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	entries, _ := store.Load()
	if len(entries) != 1 || entries[0].ID != keep.ID {
		t.Errorf("unexpected entries after delete: %+v", entries)
	}

	// Unknown ID is a no-op.
	if err := store.Delete("mem_missing"); err != nil {
		t.Errorf("Delete unknown: %v", err)
	}
}

func TestClearSurvivesReload(t *testing.T) {
	store := testStore(t)
	if _, err := store.Add(TypeNote, "something"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	// A fresh store over the same file must see the cleared state.
	reopened := &Store{FilePath: store.FilePath}
	entries, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries after clear, want 0", len(entries))
	}
}

func TestContext(t *testing.T) {
	store := testStore(t)

	ctx, err := store.Context()
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if ctx != "" {
		t.Errorf("empty store context = %q, want empty", ctx)
	}

	store.Add(TypeNote, "prefers metric units")
	store.Add(TypeNote, "works night shifts")
	ctx, err = store.Context()
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if !strings.Contains(ctx, "prefers metric units") || !strings.Contains(ctx, "works night shifts") {
		t.Errorf("context missing entries: %q", ctx)
	}
}

func TestEntryCap(t *testing.T) {
	store := testStore(t)
	for i := 0; i < MaxEntries+5; i++ {
		if _, err := store.Add(TypeNote, "entry"); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	entries, _ := store.Load()
	if len(entries) != MaxEntries {
		t.Errorf("got %d entries, want %d", len(entries), MaxEntries)
	}
}
