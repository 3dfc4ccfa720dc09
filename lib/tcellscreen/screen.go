// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tcellscreen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bureau-foundation/chiptan/lib/config"
	"github.com/bureau-foundation/chiptan/lib/flicker"
)

const maxTANLength = 16

const helpText = "[/] bar width   -/+ delay   enter confirm TAN   esc cancel"

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	litStyle        = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorWhite)
	markerStyle     = backgroundStyle.Foreground(tcell.NewRGBColor(230, 26, 26))
	valueStyle      = backgroundStyle.Foreground(tcell.ColorOrange).Bold(true)
	helpStyle       = backgroundStyle.Foreground(tcell.ColorGray)
)

// Controller is the part of a flicker.Session that Run drives.
type Controller interface {
	Reconfigure(interval time.Duration) error
	Stop()
}

// Options configures a Screen.
type Options struct {
	// Geometry in nominal pixels.
	BarWidth  int
	BarHeight int
	Margin    int

	// DelayMS is the interval the session was started with.
	DelayMS int

	Logger *slog.Logger
}

// Result is the outcome of Run.
type Result struct {
	Submitted bool
	TAN       string
	BarWidth  int
	DelayMS   int
}

// Screen paints flicker frames and the viewer controls on a tcell
// screen. Draw is safe to call from the session goroutine while Run
// handles input.
type Screen struct {
	screen tcell.Screen
	logger *slog.Logger

	mu        sync.Mutex
	frame     flicker.Frame
	barWidth  int
	barHeight int
	margin    int
	delayMS   int
	tan       []rune
}

// New creates a Screen drawing on screen, which must already be
// initialized.
func New(screen tcell.Screen, options Options) *Screen {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Screen{
		screen:    screen,
		logger:    logger,
		barWidth:  config.ClampBarWidth(options.BarWidth),
		barHeight: options.BarHeight,
		margin:    options.Margin,
		delayMS:   config.ClampDelayMS(options.DelayMS),
	}
}

// Draw implements flicker.Renderer.
func (s *Screen) Draw(tick flicker.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = tick.Frame
	s.paintLocked()
}

// Result returns the current adjustments and TAN state.
func (s *Screen) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Result{
		TAN:      string(s.tan),
		BarWidth: s.barWidth,
		DelayMS:  s.delayMS,
	}
}

// Run handles keyboard input until the user confirms a TAN, cancels,
// or ctx is done. It stops the session before returning. The event
// reader it starts exits when the caller finalizes the tcell screen.
func (s *Screen) Run(ctx context.Context, session Controller) (Result, error) {
	defer session.Stop()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			event := s.screen.PollEvent()
			if event == nil {
				return
			}
			select {
			case events <- event:
			case <-quit:
				return
			}
		}
	}()

	s.repaint()
	for {
		select {
		case <-ctx.Done():
			return s.Result(), ctx.Err()
		case event := <-events:
			result, done, err := s.handleEvent(event, session)
			if err != nil || done {
				return result, err
			}
		}
	}
}

func (s *Screen) handleEvent(event tcell.Event, session Controller) (Result, bool, error) {
	switch event := event.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		s.repaint()

	case *tcell.EventKey:
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			result := s.Result()
			result.TAN = ""
			return result, true, nil

		case tcell.KeyEnter:
			result := s.Result()
			result.TAN = strings.TrimSpace(result.TAN)
			if result.TAN == "" {
				break
			}
			result.Submitted = true
			return result, true, nil

		case tcell.KeyUp:
			return Result{}, false, s.changeDelay(session, config.DelayStepMS)
		case tcell.KeyDown:
			return Result{}, false, s.changeDelay(session, -config.DelayStepMS)
		case tcell.KeyRight:
			s.changeBarWidth(1)
		case tcell.KeyLeft:
			s.changeBarWidth(-1)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			s.editTAN(func(tan []rune) []rune {
				if len(tan) == 0 {
					return tan
				}
				return tan[:len(tan)-1]
			})

		case tcell.KeyRune:
			switch character := event.Rune(); character {
			case '+':
				return Result{}, false, s.changeDelay(session, config.DelayStepMS)
			case '-':
				return Result{}, false, s.changeDelay(session, -config.DelayStepMS)
			case ']':
				s.changeBarWidth(1)
			case '[':
				s.changeBarWidth(-1)
			default:
				s.editTAN(func(tan []rune) []rune {
					if len(tan) >= maxTANLength {
						return tan
					}
					return append(tan, character)
				})
			}
		}
	}
	return Result{}, false, nil
}

// changeDelay moves the delay by step and reconfigures the session
// when the clamped value changed.
func (s *Screen) changeDelay(session Controller, step int) error {
	s.mu.Lock()
	delayMS := config.ClampDelayMS(s.delayMS + step)
	if delayMS == s.delayMS {
		s.mu.Unlock()
		return nil
	}
	s.delayMS = delayMS
	s.paintLocked()
	s.mu.Unlock()

	s.logger.Debug("flicker delay changed", "delay_ms", delayMS)
	if err := session.Reconfigure(time.Duration(delayMS) * time.Millisecond); err != nil {
		return fmt.Errorf("changing delay to %d ms: %w", delayMS, err)
	}
	return nil
}

func (s *Screen) changeBarWidth(step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barWidth = config.ClampBarWidth(s.barWidth + step)
	s.paintLocked()
}

func (s *Screen) editTAN(edit func([]rune) []rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tan = edit(s.tan)
	s.paintLocked()
}

func (s *Screen) repaint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paintLocked()
}

// paintLocked redraws the whole screen: markers on the first row, the
// bars below, then the TAN field, settings and help.
func (s *Screen) paintLocked() {
	width, _ := s.screen.Size()
	layout := flicker.NewLayout(s.barWidth, s.barHeight, s.margin)
	origin := layout.Origin(width)

	s.screen.Fill(' ', backgroundStyle)
	for _, bar := range flicker.MarkerBars {
		s.screen.SetContent(origin+layout.MarkerColumn(bar), 0, '▼', nil, markerStyle)
	}
	for row := 1; row <= layout.HeightCells; row++ {
		for column := 0; column < layout.Width(); column++ {
			bar := layout.BarAt(column)
			if bar >= 0 && s.frame.Bit(bar) {
				s.screen.SetContent(origin+column, row, '█', nil, litStyle)
			}
		}
	}

	row := layout.HeightCells + 2
	s.drawCentred(row, "TAN: "+string(s.tan)+"_", backgroundStyle)
	s.drawCentred(row+2, fmt.Sprintf("bar width %d   delay %d ms", s.barWidth, s.delayMS), valueStyle)
	s.drawCentred(row+3, helpText, helpStyle)
	s.screen.Show()
}

func (s *Screen) drawCentred(row int, text string, style tcell.Style) {
	width, _ := s.screen.Size()
	characters := []rune(text)
	column := max((width-len(characters))/2, 0)
	for index, character := range characters {
		s.screen.SetContent(column+index, row, character, nil, style)
	}
}
