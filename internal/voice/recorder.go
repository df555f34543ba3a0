// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package voice

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Recording parameters. 16kHz mono PCM is what speech models expect.
const (
	sampleRate = 16000
	channels   = 1

	// stopGrace is how long to wait for the recorder process to flush
	// and exit after an interrupt before killing it.
	stopGrace = 2 * time.Second
)

// Recorder captures audio from the default input device.
type Recorder interface {
	// Start begins capturing. Returns a CaptureError if no recording
	// tool is available or the device cannot be opened.
	Start() error

	// Stop ends the capture and returns the recorded audio.
	Stop() ([]byte, error)

	// MIMEType returns the MIME type of the audio Stop produces.
	MIMEType() string
}

// =============================================================================
// CAPTURE ERRORS
// =============================================================================

// CaptureError represents a failed audio capture: a missing recording
// tool, a device that cannot be opened, or a recorder that produced no
// audio.
type CaptureError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio capture failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("audio capture failed: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// =============================================================================
// EXEC RECORDER
// =============================================================================

// ExecRecorder records via an external capture tool. It prefers sox's rec,
// then sox directly, then ALSA's arecord. The recording is written to a
// temporary WAV file that is removed after Stop.
type ExecRecorder struct {
	cmd      *exec.Cmd
	filePath string
}

// NewExecRecorder creates a recorder backed by the system capture tool.
func NewExecRecorder() *ExecRecorder {
	return &ExecRecorder{}
}

// captureCommand builds the capture command for the first available tool.
func captureCommand(outPath string) (*exec.Cmd, error) {
	rate := fmt.Sprintf("%d", sampleRate)
	ch := fmt.Sprintf("%d", channels)

	if path, err := exec.LookPath("rec"); err == nil {
		return exec.Command(path, "-q", "-r", rate, "-c", ch, "-b", "16", outPath), nil
	}
	if path, err := exec.LookPath("sox"); err == nil {
		return exec.Command(path, "-q", "-d", "-r", rate, "-c", ch, "-b", "16", outPath), nil
	}
	if runtime.GOOS == "linux" {
		if path, err := exec.LookPath("arecord"); err == nil {
			return exec.Command(path, "-q", "-f", "S16_LE", "-r", rate, "-c", ch, outPath), nil
		}
	}
	return nil, &CaptureError{Reason: "no recording tool found (install sox or alsa-utils)"}
}

// Start launches the capture process.
func (r *ExecRecorder) Start() error {
	if r.cmd != nil {
		return &CaptureError{Reason: "capture already running"}
	}

	f, err := os.CreateTemp("", "friday-capture-*.wav")
	if err != nil {
		return &CaptureError{Reason: "cannot create capture file", Err: err}
	}
	path := f.Name()
	f.Close()

	cmd, err := captureCommand(path)
	if err != nil {
		os.Remove(path)
		return err
	}
	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return &CaptureError{Reason: "cannot start recording tool", Err: err}
	}

	r.cmd = cmd
	r.filePath = path
	return nil
}

// Stop interrupts the capture process, waits for it to flush the WAV
// header, and returns the recorded audio.
func (r *ExecRecorder) Stop() ([]byte, error) {
	if r.cmd == nil {
		return nil, &CaptureError{Reason: "no capture in progress"}
	}
	cmd, path := r.cmd, r.filePath
	r.cmd = nil
	r.filePath = ""
	defer os.Remove(path)

	// Interrupt lets the tool finalize the file. Windows has no SIGINT
	// delivery for child processes, so kill there.
	if runtime.GOOS == "windows" {
		_ = cmd.Process.Kill()
	} else {
		_ = cmd.Process.Signal(os.Interrupt)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopGrace):
		_ = cmd.Process.Kill()
		<-done
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, &CaptureError{Reason: "cannot read capture file", Err: err}
	}
	if len(audio) == 0 {
		return nil, &CaptureError{Reason: "recorder produced no audio"}
	}
	return audio, nil
}

// MIMEType returns the capture format.
func (r *ExecRecorder) MIMEType() string {
	return "audio/wav"
}
