// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flicker

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/chiptan/lib/clock"
)

var (
	// ErrInvalidInterval is returned for a tick interval <= 0.
	ErrInvalidInterval = errors.New("flicker: tick interval must be positive")

	// ErrNoRenderer is returned by StartSession without a Renderer.
	ErrNoRenderer = errors.New("flicker: session requires a renderer")

	// ErrSessionStopped is returned by Reconfigure after Stop.
	ErrSessionStopped = errors.New("flicker: session stopped")
)

// Renderer draws ticks. Draw is called from the session goroutine, one
// tick at a time, and must not block for long: the next tick waits
// for it.
type Renderer interface {
	Draw(tick Tick)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(tick Tick)

// Draw calls function(tick).
func (function RendererFunc) Draw(tick Tick) { function(tick) }

// SessionConfig configures StartSession.
type SessionConfig struct {
	// Frames is the encoded challenge, usually from Encode.
	Frames []Frame

	// Interval is the initial tick interval.
	Interval time.Duration

	// Clock supplies the ticker. Nil means clock.Real().
	Clock clock.Clock

	// Renderer receives every tick.
	Renderer Renderer

	// Logger receives debug records for interval changes and
	// teardown. Nil discards them.
	Logger *slog.Logger
}

// Session runs a Sequencer on a ticker. All sequencer state is touched
// only by the session goroutine; Reconfigure and Stop hand their work
// to it over channels.
type Session struct {
	sequencer   *Sequencer
	ticker      *clock.Ticker
	renderer    Renderer
	logger      *slog.Logger
	reconfigure chan time.Duration
	stop        chan struct{}
	done        chan struct{}
	stopOnce    sync.Once
}

// StartSession validates config, schedules the first tick one Interval
// from now and starts the tick loop. The ticker is registered before
// StartSession returns.
func StartSession(config SessionConfig) (*Session, error) {
	if config.Interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if config.Renderer == nil {
		return nil, ErrNoRenderer
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	session := &Session{
		sequencer:   NewSequencer(config.Frames, config.Interval),
		ticker:      config.Clock.NewTicker(config.Interval),
		renderer:    config.Renderer,
		logger:      logger,
		reconfigure: make(chan time.Duration),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	logger.Debug("flicker session started",
		"frames", len(config.Frames),
		"interval", config.Interval,
	)
	go session.run()
	return session, nil
}

func (session *Session) run() {
	defer close(session.done)
	defer session.ticker.Stop()

	for {
		select {
		case <-session.stop:
			session.logger.Debug("flicker session stopped",
				"position", session.sequencer.Position())
			return

		case interval := <-session.reconfigure:
			session.sequencer.Reconfigure(interval)

		case <-session.ticker.C:
			// A stop racing with a tick wins: nothing is drawn
			// once Stop has been called.
			select {
			case <-session.stop:
				continue
			default:
			}

			tick := session.sequencer.Tick()
			if tick.Rescheduled {
				session.ticker.Reset(session.sequencer.Interval())
				session.logger.Debug("flicker interval changed",
					"interval", session.sequencer.Interval(),
					"position", tick.Position,
				)
			}
			session.renderer.Draw(tick)
		}
	}
}

// Reconfigure changes the tick interval. The change is applied on the
// next tick, which redisplays the upcoming frame and restarts the
// ticker at interval.
func (session *Session) Reconfigure(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	select {
	case session.reconfigure <- interval:
		return nil
	case <-session.done:
		return ErrSessionStopped
	case <-session.stop:
		return ErrSessionStopped
	}
}

// Stop cancels the ticker and waits for the tick loop to exit. Draw is
// not called after Stop returns. Stop is idempotent.
func (session *Session) Stop() {
	session.stopOnce.Do(func() { close(session.stop) })
	<-session.done
}

// Done is closed when the tick loop has exited.
func (session *Session) Done() <-chan struct{} { return session.done }
