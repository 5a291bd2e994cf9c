// Package assistant hosts the state owner: a single event loop that holds
// the only live references to the reminder store and activity state. Input
// capture, the sweep ticker, and the status poller all run as independent
// workers that communicate with the loop by message, never by shared
// reference, so no mutation ever races another.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"squire/internal/async"
	"squire/internal/command"
	"squire/internal/config"
	squireerrors "squire/internal/errors"
	"squire/internal/logging"
	"squire/internal/reminder"
	"squire/internal/speech"
	"squire/internal/status"
)

// DefaultSweepInterval is how often the store is checked for due reminders.
const DefaultSweepInterval = 5 * time.Second

// Assistant is the state owner. Construct with New, wire collaborators,
// then drive it with Run.
type Assistant struct {
	store       *reminder.Store
	interpreter command.Interpreter
	speaker     speech.Speaker
	recognizer  speech.Recognizer
	presenter   Presenter
	logger      logging.Logger

	doc        config.Document
	configOpts []config.Option

	activity ActivityState

	msgs          chan message
	sweepInterval time.Duration
	now           func() time.Time

	credsMu  sync.RWMutex
	credsVal status.Credentials

	capturing   atomic.Bool
	statusStart sync.Once
	statusRun   func(ctx context.Context)
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithInterpreter substitutes the utterance parser.
func WithInterpreter(i command.Interpreter) Option {
	return func(a *Assistant) { a.interpreter = i }
}

// WithRecognizer attaches a speech capture device.
func WithRecognizer(r speech.Recognizer) Option {
	return func(a *Assistant) { a.recognizer = r }
}

// WithPresenter attaches a visual surface.
func WithPresenter(p Presenter) Option {
	return func(a *Assistant) { a.presenter = p }
}

// WithSweepInterval overrides the due-reminder sweep period.
func WithSweepInterval(d time.Duration) Option {
	return func(a *Assistant) { a.sweepInterval = d }
}

// WithClock substitutes the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// WithConfigOptions forwards options to every config load and save.
func WithConfigOptions(opts ...config.Option) Option {
	return func(a *Assistant) { a.configOpts = opts }
}

// New builds an assistant from a loaded document. Reminders that fail to
// parse are dropped with a log line rather than failing startup.
func New(doc config.Document, speaker speech.Speaker, logger logging.Logger, opts ...Option) *Assistant {
	a := &Assistant{
		store:         reminder.NewStore(),
		interpreter:   command.NewKeywordInterpreter(),
		speaker:       speaker,
		presenter:     NopPresenter(),
		logger:        logging.OrNop(logger),
		doc:           doc,
		activity:      ActivityState{Label: status.LabelNoGame},
		msgs:          make(chan message, 16),
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.speaker == nil {
		a.logger.Warn("no speech device attached; continuing text-only")
		a.speaker = speech.NopSpeaker()
	}

	for _, err := range a.store.Restore(doc.Reminders) {
		a.logger.Warn("skipping saved reminder: %v", err)
	}
	a.credsVal = status.Credentials{APIKey: doc.SteamAPIKey, SteamID: doc.SteamID}

	return a
}

// UseStatusWorker attaches the status poll loop. Must be called before Run.
// The worker is started lazily: at Run when credentials are already present,
// or when credentials are first set.
func (a *Assistant) UseStatusWorker(run func(ctx context.Context)) {
	a.statusRun = run
}

// Credentials returns the current Steam credentials. Safe to call from any
// goroutine; the status poller reads it once per cycle.
func (a *Assistant) Credentials() status.Credentials {
	a.credsMu.RLock()
	defer a.credsMu.RUnlock()
	return a.credsVal
}

// SubmitUtterance posts input text for interpretation.
func (a *Assistant) SubmitUtterance(text string) {
	a.msgs <- utteranceMessage{text: text}
}

// Process interprets and applies one utterance synchronously. It exists for
// one-shot command invocations and must not be called while Run is active.
func (a *Assistant) Process(text string) {
	a.handle(context.Background(), utteranceMessage{text: text})
}

// PostStatus posts one status poll result. Used as the poller's emit hook.
func (a *Assistant) PostStatus(update status.Update) {
	a.msgs <- statusMessage{update: update}
}

// SetCredentials posts a Steam credential update.
func (a *Assistant) SetCredentials(apiKey, steamID string) {
	a.msgs <- credentialsMessage{apiKey: apiKey, steamID: steamID}
}

// StartCapture spawns a single capture worker. It reports false when no
// recognizer is attached or a capture is already in flight; only one worker
// listens at a time.
func (a *Assistant) StartCapture() bool {
	if a.recognizer == nil {
		return false
	}
	if !a.capturing.CompareAndSwap(false, true) {
		a.logger.Debug("capture already in progress")
		return false
	}
	async.Go(a.logger, "voice-capture", func() {
		defer a.capturing.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(),
			speech.CaptureStartTimeout+speech.PhraseTimeLimit)
		defer cancel()

		text, err := a.recognizer.Capture(ctx)
		if err != nil {
			a.msgs <- captureFailedMessage{err: err}
			return
		}
		a.msgs <- utteranceMessage{text: text}
	})
	return true
}

// Run drives the event loop until ctx is cancelled. The document is saved
// once more on the way out.
func (a *Assistant) Run(ctx context.Context) error {
	a.logger.Info("assistant started with %d saved reminders", a.store.Len())
	a.presenter.Refresh(a.store.Snapshot())
	a.presenter.Activity(a.activity)

	if a.doc.HasCredentials() {
		a.startStatusWorker(ctx)
	}

	ticker := time.NewTicker(a.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.persist()
			a.logger.Info("assistant stopped")
			return nil
		case msg := <-a.msgs:
			a.handle(ctx, msg)
		case <-ticker.C:
			a.sweep(a.now())
		}
	}
}

func (a *Assistant) handle(ctx context.Context, msg message) {
	switch m := msg.(type) {
	case utteranceMessage:
		a.logger.Info("heard: %s", m.text)
		a.dispatch(a.interpreter.Interpret(m.text))
	case captureFailedMessage:
		a.speakCaptureFailure(m.err)
	case statusMessage:
		a.applyStatus(m.update)
	case credentialsMessage:
		a.applyCredentials(ctx, m)
	}
}

func (a *Assistant) applyStatus(update status.Update) {
	a.activity.Label = update.Label
	if update.FocusKnown {
		a.activity.FocusModeActive = update.FocusActive
	}
	a.logger.Debug("activity: %s (focus=%v)", a.activity.Label, a.activity.FocusModeActive)
	a.presenter.Activity(a.activity)
}

func (a *Assistant) applyCredentials(ctx context.Context, m credentialsMessage) {
	a.credsMu.Lock()
	a.credsVal = status.Credentials{APIKey: m.apiKey, SteamID: m.steamID}
	a.credsMu.Unlock()

	a.doc.SteamAPIKey = m.apiKey
	a.doc.SteamID = m.steamID
	a.persist()

	if err := config.Verify(a.doc, a.configOpts...); err != nil {
		a.logger.Error("credential save verification failed: %v", err)
		return
	}

	a.speak("Steam settings saved. Starting game detection.")
	a.startStatusWorker(ctx)
}

func (a *Assistant) startStatusWorker(ctx context.Context) {
	if a.statusRun == nil {
		return
	}
	a.statusStart.Do(func() {
		async.Go(a.logger, "status-poller", func() {
			a.statusRun(ctx)
		})
	})
}

func (a *Assistant) speakCaptureFailure(err error) {
	switch {
	case errors.Is(err, speech.ErrCaptureTimeout):
		a.speak("Didn't hear anything. Try again.")
	case errors.Is(err, speech.ErrUnrecognized):
		a.speak("Sorry, didn't catch that. Try again.")
	default:
		a.speak(fmt.Sprintf("Microphone error: %s", err))
	}
}

// speak blocks the loop for the duration of playback. Voice feedback is
// deliberately synchronous so utterances never interleave.
func (a *Assistant) speak(text string) {
	if err := a.speaker.Speak(text); err != nil {
		a.logger.Error("speak failed: %v", err)
	}
}

// persist writes the document after a mutation. A transient IO failure gets
// one immediate retry; anything still failing is logged and the session
// continues in memory.
func (a *Assistant) persist() {
	a.doc.Reminders = a.store.Records()
	_, err := config.Save(a.doc, a.configOpts...)
	if err != nil && squireerrors.IsTransient(err) {
		a.logger.Warn("save config failed, retrying once: %v", err)
		_, err = config.Save(a.doc, a.configOpts...)
	}
	if err != nil {
		a.logger.Error("save config: %v", err)
	}
}

func (a *Assistant) persistAndRefresh() {
	a.persist()
	a.presenter.Refresh(a.store.Snapshot())
}
