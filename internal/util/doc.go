// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Package util provides small shared helpers for the friday application:
// atomic file writes for the persistence layers and rune-aware string
// truncation for display code.
package util
