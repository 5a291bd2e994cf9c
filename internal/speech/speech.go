// Package speech defines the capture and playback collaborators. The
// assistant only ever sees these interfaces; real microphone and TTS devices,
// and the console fallbacks used when neither is available, all sit behind
// them.
package speech

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// CaptureStartTimeout is how long capture waits for speech to begin.
	CaptureStartTimeout = 5 * time.Second
	// PhraseTimeLimit bounds the length of a single captured utterance.
	PhraseTimeLimit = 10 * time.Second
)

var (
	// ErrCaptureTimeout - no speech was detected before the timeout.
	ErrCaptureTimeout = errors.New("speech: no speech detected before timeout")
	// ErrUnrecognized - audio was captured but could not be converted to text.
	ErrUnrecognized = errors.New("speech: could not recognize speech")
)

// DeviceError reports a capture or playback device failure.
type DeviceError struct {
	Message string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("speech device: %s", e.Message)
}

// NewDeviceError wraps a device failure message.
func NewDeviceError(message string) *DeviceError {
	return &DeviceError{Message: message}
}

// IsDeviceError reports whether err is a device failure.
func IsDeviceError(err error) bool {
	var devErr *DeviceError
	return errors.As(err, &devErr)
}

// Recognizer captures one utterance and converts it to text. Capture blocks
// the calling goroutine and always returns a terminal result: text,
// ErrCaptureTimeout, ErrUnrecognized, or a DeviceError.
type Recognizer interface {
	Capture(ctx context.Context) (string, error)
}

// Speaker converts text to audible speech, blocking until playback completes.
type Speaker interface {
	Speak(text string) error
}

type nopSpeaker struct{}

func (nopSpeaker) Speak(string) error { return nil }

// NopSpeaker returns a speaker that silently discards output. Used when the
// playback device failed to initialize and the session runs text-only.
func NopSpeaker() Speaker {
	return nopSpeaker{}
}
