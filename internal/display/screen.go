package display

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/yersmagit/lessons-displayer/internal/domain/automation"
	"github.com/yersmagit/lessons-displayer/internal/domain/schedule"
	"github.com/yersmagit/lessons-displayer/internal/logger"
)

// frameDelay is the redraw cadence of the terminal display.
const frameDelay = 500 * time.Millisecond

// Screen renders the lesson strip and the overlay modes on a terminal via
// tcell. Manual key toggles (b/w/n) route through the shared State exactly
// like engine commands; the engine never learns about them directly, the
// OS-level input monitor picks up the keystrokes on its own.
type Screen struct {
	state    *State
	screen   tcell.Screen
	today    schedule.Day
	tomorrow schedule.Day
	preview  schedule.PreviewSettings
}

// NewScreen initializes the terminal display. tomorrow may be nil when no
// next-day schedule is available; the preview then stays off.
func NewScreen(state *State, today, tomorrow schedule.Day, preview schedule.PreviewSettings) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialize screen: %w", err)
	}

	screen.Clear()
	screen.HideCursor()

	return &Screen{
		state:    state,
		screen:   screen,
		today:    today,
		tomorrow: tomorrow,
		preview:  preview,
	}, nil
}

// Run drives the event and redraw loop until the context is cancelled.
func (s *Screen) Run(ctx context.Context) {
	defer s.screen.Fini()

	events := make(chan tcell.Event, 10)

	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameDelay)
	defer ticker.Stop()

	s.draw(time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				s.handleKey(ctx, ev)
			case *tcell.EventResize:
				s.screen.Sync()
			}

			s.draw(time.Now())
		case now := <-ticker.C:
			s.draw(now)
		}
	}
}

// handleKey maps the manual toggle keys onto the shared state.
func (s *Screen) handleKey(ctx context.Context, ev *tcell.EventKey) {
	var mode automation.Mode

	switch ev.Rune() {
	case 'b':
		mode = automation.ModeBlackout
	case 'w':
		mode = automation.ModeWhiteboard
	case 'n':
		mode = automation.ModeNone
	default:
		return
	}

	if err := s.state.SetMode(ctx, mode); err != nil {
		logger.Warnf(ctx, "Manual mode toggle failed: %v", err)
	}
}

// draw repaints the whole screen for the current mode.
func (s *Screen) draw(now time.Time) {
	switch s.state.CurrentMode() {
	case automation.ModeBlackout:
		s.fill(tcell.StyleDefault.Background(tcell.ColorBlack))
	case automation.ModeWhiteboard:
		s.fill(tcell.StyleDefault.Background(tcell.ColorWhite))
	default:
		s.drawStrip(now)
	}

	s.screen.Show()
}

// fill paints every cell with the given style.
func (s *Screen) fill(style tcell.Style) {
	width, height := s.screen.Size()

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			s.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// drawStrip renders the lesson list with the current period highlighted,
// the time remaining in it, and — late in the day — tomorrow's schedule.
func (s *Screen) drawStrip(now time.Time) {
	s.screen.Clear()

	day := s.today
	title := "今日课程"
	showingToday := true

	if s.tomorrow != nil && schedule.ShowTomorrow(now, s.today, s.preview) {
		day = s.tomorrow
		title = "明日课程"
		showingToday = false
	}

	s.drawText(0, 0, title, tcell.StyleDefault.Bold(true))

	current, hasCurrent := s.today.At(now)

	col := 0
	for i, p := range day {
		if i > 0 {
			s.drawText(col, 2, " | ", tcell.StyleDefault)
			col += 3
		}

		style := tcell.StyleDefault
		if showingToday && hasCurrent && day[i].Name == current.Name {
			style = style.Reverse(true).Bold(true)
		}

		s.drawText(col, 2, p.Name, style)
		col += len([]rune(p.Name))
	}

	if hasCurrent {
		remaining := current.End.Sub(now).Truncate(time.Second)
		s.drawText(0, 4, fmt.Sprintf("%s 剩余 %s", current.Name, remaining), tcell.StyleDefault)
	}

	s.drawText(0, 6, "b=熄屏  w=白板  n=恢复", tcell.StyleDefault.Dim(true))
}

// drawText writes a string starting at (col, row).
func (s *Screen) drawText(col, row int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(col, row, r, nil, style)
		col++
	}
}
