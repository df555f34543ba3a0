// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Concurrency tests for the capture bridge: state transitions are
// serialized, so racing callers must never corrupt the state machine.
package voice

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBridge_ConcurrentStartSingleWinner verifies that racing Start calls
// admit exactly one capture; the rest get ErrCaptureBusy.
func TestBridge_ConcurrentStartSingleWinner(t *testing.T) {
	rec := &fakeRecorder{audio: []byte("wav")}
	bridge := NewBridge(rec, &fakeTranscriber{text: "ok"})

	const callers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	started := 0
	busy := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := bridge.Start()
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				started++
			case errors.Is(err, ErrCaptureBusy):
				busy++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, started, "exactly one Start must win")
	require.Equal(t, callers-1, busy)
	require.Equal(t, 1, rec.started, "recorder must start once")
	require.True(t, bridge.Recording())
}

// TestBridge_ConcurrentStateReads verifies that state queries are safe
// while a capture starts, ticks, and gets cancelled.
func TestBridge_ConcurrentStateReads(t *testing.T) {
	bridge := NewBridge(&fakeRecorder{audio: []byte("wav")}, &fakeTranscriber{text: "ok"})
	require.NoError(t, bridge.Start())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bridge.State()
			_ = bridge.Recording()
			_ = bridge.Elapsed()
		}()
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bridge.Cancel()
		}()
	}
	wg.Wait()

	require.Equal(t, StateIdle, bridge.State())
	require.Zero(t, bridge.Elapsed())
}

// TestBridge_ConcurrentStopSingleTranscription verifies that racing stop
// calls transcribe at most once; the rest see ErrNoCapture.
func TestBridge_ConcurrentStopSingleTranscription(t *testing.T) {
	rec := &fakeRecorder{audio: []byte("wav")}
	tr := &fakeTranscriber{text: "hello"}
	bridge := NewBridge(rec, tr)
	require.NoError(t, bridge.Start())

	const callers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	transcripts := 0
	noCapture := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := bridge.StopAndTranscribe(context.Background())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				require.Equal(t, "hello", text)
				transcripts++
			case errors.Is(err, ErrNoCapture):
				noCapture++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, transcripts, "exactly one stop must transcribe")
	require.Equal(t, callers-1, noCapture)
	require.Equal(t, StateIdle, bridge.State())
}
