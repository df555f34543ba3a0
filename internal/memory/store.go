// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Package memory provides Friday's persisted long-term memory.
//
// Memories are small free-text entries (user notes and saved
// conversation digests) kept in a single JSON file. The file is read
// wholesale at startup and rewritten atomically on every change; at
// this scale a database would be overkill.
package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haloaistud/friday-tui/internal/util"
)

// Entry types.
const (
	// TypeNote is a memory the user asked Friday to keep.
	TypeNote = "note"
	// TypeConversation is a digest of a saved conversation.
	TypeConversation = "conversation"
)

// MaxEntries caps the store. Oldest entries are dropped past the limit.
const MaxEntries = 500

// Entry is one remembered item.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// STORE
// =============================================================================

// Store persists memory entries to a JSON file.
type Store struct {
	// FilePath is the backing file. Default: ~/.friday/memory.json
	FilePath string
}

// NewStore creates a store at the default location.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(homeDir, ".friday")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Store{FilePath: filepath.Join(dir, "memory.json")}, nil
}

// NewStoreWithPath creates a store backed by a custom file.
func NewStoreWithPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &Store{FilePath: path}, nil
}

// Load reads all entries, oldest first. A missing file is an empty store.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// Add appends a new entry and returns it. Empty content is ignored.
func (s *Store) Add(entryType, content string) (*Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}
	if entryType != TypeNote && entryType != TypeConversation {
		entryType = TypeNote
	}

	entries, err := s.Load()
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:        "mem_" + uuid.NewString(),
		Type:      entryType,
		Content:   content,
		CreatedAt: time.Now(),
	}
	entries = append(entries, entry)

	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	if err := s.write(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes an entry by ID. Unknown IDs are a no-op.
func (s *Store) Delete(id string) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.write(kept)
}

// Clear removes all entries.
func (s *Store) Clear() error {
	return s.write([]Entry{})
}

// Context renders the memory as a block of text for the system
// instruction, so the model can draw on remembered facts. Returns ""
// when the store is empty.
func (s *Store) Context() (string, error) {
	entries, err := s.Load()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("Things you remember from earlier sessions:\n")
	for _, e := range entries {
		sb.WriteString("- ")
		sb.WriteString(e.Content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (s *Store) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.FilePath, data, 0644)
}
