// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Package gemini implements the client for Google's Generative Language
// API. It covers the three operations Friday needs: streaming chat
// generation over SSE, one-shot generation, and audio transcription.
//
// Streaming responses are folded into cumulative snapshots by the
// Aggregator, so the UI always renders a full message rather than
// stitching deltas itself.
package gemini
