// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flickerui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/chiptan/lib/config"
	"github.com/bureau-foundation/chiptan/lib/flicker"
)

// Instruction shown above the controls.
const instruction = "Hold the TAN generator in front of the animated graphic. " +
	"The triangles on the graphic must match those on the TAN generator."

// maxTANLength bounds the entry field. Generators show six to eight
// digits.
const maxTANLength = 16

// Options configures a Model.
type Options struct {
	// Frames is the encoded flicker code (see flicker.Encode).
	Frames []flicker.Frame

	// Geometry in nominal pixels, scaled to cells for drawing.
	BarWidth  int
	BarHeight int
	Margin    int

	// DelayMS is the initial tick interval in milliseconds.
	DelayMS int

	// Output and Profile select the lipgloss renderer. The zero
	// Profile is TrueColor; tests use termenv.Ascii. Output defaults
	// to os.Stdout.
	Output  io.Writer
	Profile termenv.Profile

	// Logger receives debug events. While the program runs the
	// terminal belongs to bubbletea, so callers should point it at a
	// file. Nil discards.
	Logger *slog.Logger
}

// Result is the outcome of a viewer run.
type Result struct {
	// Submitted is true when the user confirmed a TAN with Enter.
	Submitted bool
	TAN       string

	// Final adjustments, for persisting.
	BarWidth int
	DelayMS  int
}

// tickMsg advances the flicker code. chain identifies the tick chain
// that scheduled it.
type tickMsg struct {
	chain int
}

// Model is the bubbletea model of the flicker viewer.
type Model struct {
	frames    []flicker.Frame
	sequencer *flicker.Sequencer
	frame     flicker.Frame
	chain     int

	barWidth  int
	barHeight int
	margin    int
	delayMS   int

	keys   KeyMap
	styles styles
	input  textinput.Model
	logger *slog.Logger

	width  int
	height int

	result Result
}

// NewModel creates a viewer for options.Frames. Bar width and delay
// are clamped to their configured bounds.
func NewModel(options Options) Model {
	output := options.Output
	if output == nil {
		output = os.Stdout
	}
	renderer := lipgloss.NewRenderer(output, termenv.WithProfile(options.Profile))
	renderer.SetColorProfile(options.Profile)

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	delayMS := config.ClampDelayMS(options.DelayMS)
	sequencer := flicker.NewSequencer(options.Frames, milliseconds(delayMS))

	input := textinput.New()
	input.Prompt = "TAN: "
	input.Placeholder = "code shown by the generator"
	input.CharLimit = maxTANLength
	input.Focus()

	return Model{
		frames:    options.Frames,
		sequencer: sequencer,
		frame:     sequencer.Peek(),
		chain:     1,
		barWidth:  config.ClampBarWidth(options.BarWidth),
		barHeight: options.BarHeight,
		margin:    options.Margin,
		delayMS:   delayMS,
		keys:      DefaultKeyMap,
		styles:    newStyles(renderer, DefaultTheme),
		input:     input,
		logger:    logger,
	}
}

// Result returns the outcome so far. After the program exits it holds
// the submitted TAN (if any) and the final bar width and delay.
func (model Model) Result() Result {
	result := model.result
	result.BarWidth = model.barWidth
	result.DelayMS = model.delayMS
	return result
}

// Init implements tea.Model. Starts the tick chain and the cursor
// blink of the entry field.
func (model Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, scheduleTick(model.sequencer.Interval(), model.chain))
}

func scheduleTick(interval time.Duration, chain int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{chain: chain}
	})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tickMsg:
		return model.handleTick(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	var command tea.Cmd
	model.input, command = model.input.Update(message)
	return model, command
}

// handleTick shows the next frame and schedules the following tick at
// the sequencer's current interval. Ticks from a previous chain are
// dropped without scheduling.
func (model Model) handleTick(message tickMsg) (tea.Model, tea.Cmd) {
	if message.chain != model.chain {
		return model, nil
	}
	tick := model.sequencer.Tick()
	model.frame = tick.Frame
	if tick.Rescheduled {
		model.logger.Debug("flicker tick rescheduled",
			"interval", model.sequencer.Interval(),
			"position", tick.Position,
		)
	}
	return model, scheduleTick(model.sequencer.Interval(), model.chain)
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.result = Result{}
		return model, tea.Quit

	case key.Matches(message, model.keys.Submit):
		tan := strings.TrimSpace(model.input.Value())
		if tan == "" {
			return model, nil
		}
		model.result = Result{Submitted: true, TAN: tan}
		return model, tea.Quit

	case key.Matches(message, model.keys.DelayUp):
		model.setDelay(model.delayMS + config.DelayStepMS)
		return model, nil

	case key.Matches(message, model.keys.DelayDown):
		model.setDelay(model.delayMS - config.DelayStepMS)
		return model, nil

	case key.Matches(message, model.keys.Wider):
		model.barWidth = config.ClampBarWidth(model.barWidth + 1)
		return model, nil

	case key.Matches(message, model.keys.Narrower):
		model.barWidth = config.ClampBarWidth(model.barWidth - 1)
		return model, nil

	case key.Matches(message, model.keys.Restart):
		return model.restart()
	}

	var command tea.Cmd
	model.input, command = model.input.Update(message)
	return model, command
}

// setDelay changes the tick interval. The tick in flight still fires
// at the old interval; it redisplays and reschedules.
func (model *Model) setDelay(delayMS int) {
	delayMS = config.ClampDelayMS(delayMS)
	if delayMS == model.delayMS {
		return
	}
	model.delayMS = delayMS
	model.sequencer.Reconfigure(milliseconds(delayMS))
	model.logger.Debug("flicker delay changed", "delay_ms", delayMS)
}

// restart begins the code again from its first frame on a new tick
// chain.
func (model Model) restart() (tea.Model, tea.Cmd) {
	model.sequencer = flicker.NewSequencer(model.frames, milliseconds(model.delayMS))
	model.frame = model.sequencer.Peek()
	model.chain++
	model.logger.Debug("flicker restarted", "chain", model.chain)
	return model, scheduleTick(model.sequencer.Interval(), model.chain)
}

func milliseconds(value int) time.Duration {
	return time.Duration(value) * time.Millisecond
}

func (model Model) layout() flicker.Layout {
	return flicker.NewLayout(model.barWidth, model.barHeight, model.margin)
}

// View implements tea.Model.
func (model Model) View() string {
	layout := model.layout()
	origin := strings.Repeat(" ", layout.Origin(model.width))

	var builder strings.Builder
	builder.WriteString(origin + model.renderMarkers(layout) + "\n")
	bars := origin + model.renderBars(layout)
	for row := 0; row < layout.HeightCells; row++ {
		builder.WriteString(bars + "\n")
	}
	builder.WriteString("\n")
	builder.WriteString(model.centre(model.input.View()) + "\n")
	builder.WriteString("\n")
	builder.WriteString(model.centre(model.renderSettings()) + "\n")
	builder.WriteString(model.centre(model.styles.help.Render(instruction)) + "\n")
	builder.WriteString(model.centre(model.renderHelp()))
	return builder.String()
}

// renderMarkers renders the row of triangles over the marker bars.
func (model Model) renderMarkers(layout flicker.Layout) string {
	width := layout.Width()
	var builder strings.Builder
	blank := 0
	for column := 0; column < width; column++ {
		if !isMarkerColumn(layout, column) {
			blank++
			continue
		}
		if blank > 0 {
			builder.WriteString(model.styles.unlit.Render(strings.Repeat(" ", blank)))
			blank = 0
		}
		builder.WriteString(model.styles.marker.Render("▼"))
	}
	if blank > 0 {
		builder.WriteString(model.styles.unlit.Render(strings.Repeat(" ", blank)))
	}
	return builder.String()
}

func isMarkerColumn(layout flicker.Layout, column int) bool {
	for _, bar := range flicker.MarkerBars {
		if layout.MarkerColumn(bar) == column {
			return true
		}
	}
	return false
}

// renderBars renders one text row of the bar block for the current
// frame. Lit bars are full blocks so they stay visible without color.
func (model Model) renderBars(layout flicker.Layout) string {
	gap := model.styles.unlit.Render(strings.Repeat(" ", layout.GapCells))
	lit := model.styles.lit.Render(strings.Repeat("█", layout.BarCells))
	unlit := model.styles.unlit.Render(strings.Repeat(" ", layout.BarCells))

	var builder strings.Builder
	for bar := 0; bar < flicker.Bars; bar++ {
		if bar > 0 {
			builder.WriteString(gap)
		}
		if model.frame.Bit(bar) {
			builder.WriteString(lit)
		} else {
			builder.WriteString(unlit)
		}
	}
	return builder.String()
}

func (model Model) renderSettings() string {
	return model.styles.text.Render("bar width ") +
		model.styles.value.Render(fmt.Sprintf("%d", model.barWidth)) +
		model.styles.text.Render("   delay ") +
		model.styles.value.Render(fmt.Sprintf("%d ms", model.delayMS))
}

// renderHelp renders the key hints from the key map.
func (model Model) renderHelp() string {
	bindings := []key.Binding{
		model.keys.Narrower, model.keys.Wider,
		model.keys.DelayDown, model.keys.DelayUp,
		model.keys.Restart, model.keys.Submit, model.keys.Cancel,
	}
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		hints = append(hints, help.Key+" "+help.Desc)
	}
	return model.styles.help.Render(strings.Join(hints, "  "))
}

// centre pads line so it is horizontally centred in the window.
func (model Model) centre(line string) string {
	padding := (model.width - ansi.StringWidth(line)) / 2
	if padding <= 0 {
		return line
	}
	return strings.Repeat(" ", padding) + line
}
