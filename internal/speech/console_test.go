package speech

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestConsoleSpeakerWritesPrefixedLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSpeaker(&buf, nil)

	require.NoError(t, s.Speak("Reminder set for 15 minutes: build a forge"))

	assert.Equal(t, "squire: Reminder set for 15 minutes: build a forge\n", buf.String())
}

func TestReaderRecognizerCapturesLine(t *testing.T) {
	r := NewReaderRecognizer(strings.NewReader("  remind me to scout north  \n"))

	text, err := r.Capture(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "remind me to scout north", text)
}

func TestReaderRecognizerEmptyLineUnrecognized(t *testing.T) {
	r := NewReaderRecognizer(strings.NewReader("\n"))

	_, err := r.Capture(context.Background())

	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestReaderRecognizerClosedInputIsDeviceError(t *testing.T) {
	r := NewReaderRecognizer(strings.NewReader(""))

	_, err := r.Capture(context.Background())

	assert.True(t, IsDeviceError(err))
	assert.True(t, r.Exhausted())
}

func TestReaderRecognizerKeepsLinesAfterTimedOutCapture(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	r := NewReaderRecognizer(pr)

	// Nothing typed yet; this capture gives up.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Capture(ctx)
	require.ErrorIs(t, err, ErrCaptureTimeout)

	// Phrases typed after the timeout must reach the next captures whole,
	// in order, with nothing eaten by the abandoned wait.
	go func() {
		_, _ = pw.Write([]byte("clear all\nlist reminders\n"))
	}()

	text, err := r.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "clear all", text)

	text, err = r.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "list reminders", text)
}

func TestReaderRecognizerHonorsContextDeadline(t *testing.T) {
	// A pipe with no writer blocks the scan until the context gives up.
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	r := NewReaderRecognizer(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Capture(ctx)

	assert.ErrorIs(t, err, ErrCaptureTimeout)
}
