package speech

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"

	"squire/internal/logging"
)

var speakPrefix = color.New(color.FgCyan, color.Bold).SprintFunc()

// ConsoleSpeaker renders utterances to a writer instead of a TTS device.
// Playback is instantaneous, so "blocking until spoken" reduces to the write.
type ConsoleSpeaker struct {
	out    io.Writer
	logger logging.Logger
}

// NewConsoleSpeaker builds a speaker that writes to out.
func NewConsoleSpeaker(out io.Writer, logger logging.Logger) *ConsoleSpeaker {
	return &ConsoleSpeaker{out: out, logger: logging.OrNop(logger)}
}

func (s *ConsoleSpeaker) Speak(text string) error {
	_, err := io.WriteString(s.out, speakPrefix("squire: ")+text+"\n")
	if err != nil {
		s.logger.Error("console speak failed: %v", err)
	}
	return err
}

// ReaderRecognizer satisfies Recognizer by reading one line of typed text,
// standing in for the microphone when no capture device is available. It
// honors the same start timeout the audio path uses.
//
// A single long-lived goroutine owns the scanner and feeds the line channel,
// so a timed-out Capture never abandons a read in flight: a line typed after
// the timeout is held and delivered intact to the next Capture.
type ReaderRecognizer struct {
	lines        chan string
	closeErr     error // set before lines is closed
	startTimeout time.Duration
	exhausted    atomic.Bool
}

// NewReaderRecognizer wraps r as a capture source.
func NewReaderRecognizer(r io.Reader) *ReaderRecognizer {
	rr := &ReaderRecognizer{
		lines:        make(chan string),
		startTimeout: CaptureStartTimeout,
	}
	go rr.readLoop(r)
	return rr
}

func (r *ReaderRecognizer) readLoop(src io.Reader) {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		r.lines <- strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		r.closeErr = NewDeviceError(err.Error())
	} else {
		r.closeErr = NewDeviceError("input closed")
	}
	r.exhausted.Store(true)
	close(r.lines)
}

// Capture waits for one line. An empty line counts as unrecognized input; a
// closed reader is a device failure; exceeding the start timeout reports
// ErrCaptureTimeout.
func (r *ReaderRecognizer) Capture(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ErrCaptureTimeout
	case <-time.After(r.startTimeout):
		return "", ErrCaptureTimeout
	case line, ok := <-r.lines:
		if !ok {
			return "", r.closeErr
		}
		if line == "" {
			return "", ErrUnrecognized
		}
		return line, nil
	}
}

// Exhausted reports whether the underlying reader has closed. Callers use it
// to stop scheduling captures instead of failing on every attempt.
func (r *ReaderRecognizer) Exhausted() bool {
	return r.exhausted.Load()
}
