// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// memory_cmd.go - Persistent memory management for the friday CLI.
//
// Subcommands:
//   friday memory list         List saved entries
//   friday memory add "text"   Save a note
//   friday memory delete <id>  Delete one entry
//   friday memory clear        Delete all entries
package cli

import (
	"fmt"
	"strings"

	"github.com/haloaistud/friday-tui/internal/memory"
)

// HandleMemoryCommand dispatches "friday memory" subcommands.
func HandleMemoryCommand(args Args) error {
	store, err := memory.NewStore()
	if err != nil {
		return fmt.Errorf("failed to open memory store: %w", err)
	}

	switch strings.ToLower(args.Subcommand) {
	case "", "list", "ls":
		return handleMemoryList(store)

	case "add":
		text := strings.TrimSpace(strings.Join(args.Raw, " "))
		if text == "" {
			return fmt.Errorf("usage: friday memory add \"text to remember\"")
		}
		entry, err := store.Add(memory.TypeNote, text)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", entry.ID)
		return nil

	case "delete", "rm":
		if len(args.Raw) == 0 {
			return fmt.Errorf("usage: friday memory delete <id>")
		}
		if err := store.Delete(args.Raw[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args.Raw[0])
		return nil

	case "clear":
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Memory cleared.")
		return nil

	default:
		return fmt.Errorf("unknown memory subcommand: %s (try list, add, delete, clear)", args.Subcommand)
	}
}

// handleMemoryList prints all entries, oldest first.
func handleMemoryList(store *memory.Store) error {
	entries, err := store.Load()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No memory entries.")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%s  %s  [%s]\n  %s\n",
			entry.ID,
			entry.CreatedAt.Format("2006-01-02 15:04"),
			entry.Type,
			entry.Content)
	}
	fmt.Printf("\n%d entries total.\n", len(entries))
	return nil
}
