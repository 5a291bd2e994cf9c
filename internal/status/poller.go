package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	squireerrors "squire/internal/errors"
	"squire/internal/logging"
)

const (
	// DefaultPollInterval is how often the Steam API is queried.
	DefaultPollInterval = 30 * time.Second

	// LabelNoGame is the activity label when the player is not in a game.
	LabelNoGame = "No game running"
)

// DefaultFocusTargets match the game names that activate focus mode.
// Substring match, case-sensitive, like the assistant has always done.
var DefaultFocusTargets = []string{"Civilization VI", "Civ VI"}

// Update is one poll result posted to the assistant. FocusKnown is false for
// degraded results: a transient Steam outage changes the label but leaves
// the last known focus-mode state in place.
type Update struct {
	Label       string
	FocusActive bool
	FocusKnown  bool
}

// Fetcher is the slice of Client the poller needs.
type Fetcher interface {
	Fetch(ctx context.Context, creds Credentials) (PlayerStatus, error)
}

// Poller queries Steam on a fixed interval and posts every result, success
// or degraded, through the emit callback. It owns no shared state.
type Poller struct {
	fetcher      Fetcher
	credentials  func() Credentials
	emit         func(Update)
	interval     time.Duration
	focusTargets []string
	logger       logging.Logger
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// WithFocusTargets overrides the game names that activate focus mode.
func WithFocusTargets(targets []string) PollerOption {
	return func(p *Poller) { p.focusTargets = targets }
}

// NewPoller builds a poller. credentials is read at the start of every cycle
// so credential updates take effect without a restart; emit must be safe to
// call from the poller goroutine.
func NewPoller(fetcher Fetcher, credentials func() Credentials, emit func(Update), logger logging.Logger, opts ...PollerOption) *Poller {
	p := &Poller{
		fetcher:      fetcher,
		credentials:  credentials,
		emit:         emit,
		interval:     DefaultPollInterval,
		focusTargets: DefaultFocusTargets,
		logger:       logging.OrNop(logger),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled. A failed cycle degrades the reported
// label and the loop carries on; only cancellation stops it.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("status poller stopped")
			return
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

func (p *Poller) cycle(ctx context.Context) {
	creds := p.credentials()
	if !creds.Present() {
		p.logger.Debug("steam credentials absent, skipping poll cycle")
		return
	}

	player, err := p.fetcher.Fetch(ctx, creds)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		label := squireerrors.FallbackLabel(err, p.truncatedErrorLabel(err))
		p.logger.Warn("steam poll failed: %v", err)
		p.post(ctx, Update{Label: label, FocusKnown: false})
		return
	}

	p.post(ctx, p.evaluate(player))
}

// post delivers an update unless shutdown has begun; the assistant's inbox
// is no longer drained once its loop exits.
func (p *Poller) post(ctx context.Context, update Update) {
	if ctx.Err() != nil {
		return
	}
	p.emit(update)
}

// evaluate turns a successful fetch into an activity update.
func (p *Poller) evaluate(player PlayerStatus) Update {
	if player.Game == "" {
		return Update{Label: LabelNoGame, FocusActive: false, FocusKnown: true}
	}
	return Update{
		Label:       player.Game,
		FocusActive: p.matchesFocusTarget(player.Game),
		FocusKnown:  true,
	}
}

func (p *Poller) matchesFocusTarget(game string) bool {
	for _, target := range p.focusTargets {
		if strings.Contains(game, target) {
			return true
		}
	}
	return false
}

func (p *Poller) truncatedErrorLabel(err error) string {
	msg := err.Error()
	if len(msg) > 30 {
		msg = msg[:30]
	}
	return fmt.Sprintf("Error: %s", msg)
}
