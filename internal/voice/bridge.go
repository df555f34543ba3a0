// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package voice

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Capture lifecycle errors.
var (
	// ErrCaptureBusy is returned when a capture is started while another
	// is already running.
	ErrCaptureBusy = errors.New("audio capture already in progress")

	// ErrNoCapture is returned when a stop arrives with no capture
	// running.
	ErrNoCapture = errors.New("no audio capture in progress")
)

// State is the capture lifecycle state.
type State int

const (
	// StateIdle means no capture is running.
	StateIdle State = iota
	// StateRecording means audio is being captured.
	StateRecording
	// StateTranscribing means captured audio is being transcribed.
	StateTranscribing
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateTranscribing:
		return "transcribing"
	default:
		return "idle"
	}
}

// Transcriber converts captured audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// =============================================================================
// BRIDGE
// =============================================================================

// Bridge drives the capture lifecycle: Start begins recording, Stop ends
// it and hands the audio to the transcriber. At most one capture runs at
// a time; a second start is rejected, not queued.
//
// Start and Stop are called from the UI update loop; transcription runs
// on a command goroutine, so state is mutex-guarded.
type Bridge struct {
	mu          sync.Mutex
	state       State
	recorder    Recorder
	transcriber Transcriber
	startedAt   time.Time
}

// NewBridge creates a bridge over the given recorder and transcriber.
func NewBridge(rec Recorder, tr Transcriber) *Bridge {
	return &Bridge{
		recorder:    rec,
		transcriber: tr,
	}
}

// State returns the current lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Recording returns true while audio is being captured.
func (b *Bridge) Recording() bool {
	return b.State() == StateRecording
}

// Elapsed returns how long the current capture has been running, zero
// when idle.
func (b *Bridge) Elapsed() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateRecording {
		return 0
	}
	return time.Since(b.startedAt)
}

// Start begins a capture. Returns ErrCaptureBusy if one is already
// running or transcribing, and a CaptureError if the recorder cannot
// start; in both cases the bridge stays in its previous state.
func (b *Bridge) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateIdle {
		return ErrCaptureBusy
	}
	if err := b.recorder.Start(); err != nil {
		return err
	}
	b.state = StateRecording
	b.startedAt = time.Now()
	return nil
}

// StopAndTranscribe ends the capture and transcribes the audio. Returns
// ErrNoCapture if nothing is recording. On any failure the bridge returns
// to idle so the next capture can start cleanly.
func (b *Bridge) StopAndTranscribe(ctx context.Context) (string, error) {
	b.mu.Lock()
	if b.state != StateRecording {
		b.mu.Unlock()
		return "", ErrNoCapture
	}
	b.state = StateTranscribing
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.state = StateIdle
		b.mu.Unlock()
	}()

	audio, err := b.recorder.Stop()
	if err != nil {
		return "", err
	}
	return b.transcriber.Transcribe(ctx, audio, b.recorder.MIMEType())
}

// Cancel aborts a running capture, discarding the audio.
func (b *Bridge) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateRecording {
		return
	}
	_, _ = b.recorder.Stop()
	b.state = StateIdle
}

// =============================================================================
// RECORDING TICK
// =============================================================================

// TickMsg is sent every second while recording to refresh the elapsed
// time display.
type TickMsg struct {
	Time time.Time
}

// TickCmd returns a command that ticks once per second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
