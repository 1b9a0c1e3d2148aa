package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

var numbers = message.NewPrinter(language.English)

// styles are derived from the active palette on every render so that a theme
// switch needs no bookkeeping here.
type styles struct {
	header      lipgloss.Style
	muted       lipgloss.Style
	errorBanner lipgloss.Style
	infoBanner  lipgloss.Style
	footer      lipgloss.Style
	section     lipgloss.Style
	indicator   lipgloss.Style
	dialog      lipgloss.Style
	focused     lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Color(theme.RolePrimary)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Color(theme.RoleCardBorder)),
		muted: lipgloss.NewStyle().
			Foreground(p.Color(theme.RoleText)).
			Faint(true),
		errorBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(p.Color(theme.RoleDanger)).
			Bold(true).
			Padding(0, 2),
		infoBanner: lipgloss.NewStyle().
			Foreground(p.Color(theme.RoleSuccess)).
			Bold(true),
		footer: lipgloss.NewStyle().
			Foreground(p.Color(theme.RoleText)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Color(theme.RoleCardBorder)),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Color(theme.RoleText)).
			MarginTop(1),
		indicator: lipgloss.NewStyle().
			Foreground(p.Color(theme.RoleWarning)).
			Bold(true),
		dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Color(theme.RolePrimary)).
			Padding(1, 2),
		focused: lipgloss.NewStyle().
			Foreground(p.Color(theme.RolePrimary)).
			Bold(true),
	}
}

// tableStyle stripes rows: the header uses the primary colour, even rows the
// card background and odd rows the hover colour.
func tableStyle(p theme.Palette, row int) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case row < 0:
		return base.Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(p.Color(theme.RolePrimary))
	case row%2 == 0:
		return base.Foreground(p.Color(theme.RoleText)).Background(p.Color(theme.RoleCardBackground))
	default:
		return base.Foreground(p.Color(theme.RoleText)).Background(p.Color(theme.RoleHover))
	}
}

func formatCount(n int) string {
	return numbers.Sprintf("%d", n)
}

func formatMoney(v float64) string {
	return numbers.Sprintf("$%.2f", v)
}
