package charts

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/stockroom/internal/logger"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

const (
	minBarWidth   = 10
	labelMaxWidth = 18
)

// Figure is a drawing surface acquired from a Board. It must be released once
// its output has been embedded.
type Figure struct {
	board    *Board
	id       int
	width    int
	lines    []string
	released bool
}

// Board hands out figures and tracks how many are open.
type Board struct {
	mu     sync.Mutex
	nextID int
	open   map[int]struct{}
	log    *logger.Logger
}

func NewBoard(log *logger.Logger) *Board {
	return &Board{open: map[int]struct{}{}, log: log}
}

// Acquire opens a figure of the given width.
func (b *Board) Acquire(width int) *Figure {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.open[b.nextID] = struct{}{}
	return &Figure{board: b, id: b.nextID, width: max(width, minBarWidth+labelMaxWidth+12)}
}

// Open counts figures acquired and not yet released.
func (b *Board) Open() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.open)
}

// Release closes the figure. Releasing twice is a no-op.
func (f *Figure) Release() {
	if f == nil || f.released {
		return
	}
	f.released = true
	f.lines = nil

	f.board.mu.Lock()
	delete(f.board.open, f.id)
	f.board.mu.Unlock()
}

// String returns what has been drawn so far.
func (f *Figure) String() string {
	return strings.Join(f.lines, "\n")
}

// Render draws d into a fresh figure and releases it before returning.
func (b *Board) Render(d Dataset, charts theme.ChartPalette, p theme.Palette, width int) string {
	fig := b.Acquire(width)
	defer fig.Release()

	fig.draw(d, charts, p)
	return fig.String()
}

// RenderAll renders each dataset in turn, separated by a blank line.
func (b *Board) RenderAll(ds []Dataset, t theme.Theme, width int) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = b.Render(d, t.Charts, t.Palette, width)
	}
	b.log.Debug("charts rendered", "count", len(ds), "theme", string(t.ID))
	return strings.Join(parts, "\n\n")
}

func (f *Figure) draw(d Dataset, charts theme.ChartPalette, p theme.Palette) {
	title := lipgloss.NewStyle().Bold(true).Foreground(p.Color(theme.RoleText))
	muted := lipgloss.NewStyle().Foreground(p.Color(theme.RoleText)).Faint(true)
	f.lines = append(f.lines, title.Render(d.Title))

	if len(d.Values) == 0 {
		f.lines = append(f.lines, muted.Render(d.Empty))
		return
	}

	labelWidth := 0
	for _, l := range d.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(truncate(l, labelMaxWidth)))
	}
	peak := 0.0
	for _, v := range d.Values {
		peak = math.Max(peak, v)
	}
	barSpace := f.width - labelWidth - 12

	for i, v := range d.Values {
		label := ""
		if i < len(d.Labels) {
			label = truncate(d.Labels[i], labelMaxWidth)
		}
		n := 0
		if peak > 0 {
			n = int(math.Round(v / peak * float64(barSpace)))
		}
		bar := lipgloss.NewStyle().Foreground(charts.At(d.Series, i)).Render(strings.Repeat("█", n))
		f.lines = append(f.lines, fmt.Sprintf("%s %s %s",
			muted.Width(labelWidth).Render(label), bar, muted.Render(formatValue(d.Prefix, v))))
	}
}

func formatValue(prefix string, v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%s%.0f", prefix, v)
	}
	return fmt.Sprintf("%s%.2f", prefix, v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
