// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Package voice captures microphone audio and turns it into chat input.
//
// The Bridge owns the capture lifecycle: start recording, stop, hand the
// audio to a transcriber, and deliver the transcript to the conversation
// as a voice-originated user message. Capture itself is delegated to
// whatever recording tool is installed (sox or arecord); the Recorder
// interface keeps the bridge testable without a microphone.
package voice
