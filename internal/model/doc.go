// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Package model contains the data structures for conversations and messages.
//
// A Conversation is the single source of truth the UI renders: an ordered
// list of user and assistant messages. Assistant messages are created empty
// when a response stream opens and grow as snapshots from the response
// aggregator are applied. The conversation enforces the single-turn rule:
// at most one assistant message is in flight at a time, and new user
// submissions are rejected while one is outstanding.
package model
