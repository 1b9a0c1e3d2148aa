package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

const descriptionWidth = 32

// View renders the current model state
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	st := newStyles(m.engine.Theme().Palette)
	var content strings.Builder

	content.WriteString(m.renderHeader(st))
	content.WriteString("\n")

	if m.showError {
		content.WriteString(st.errorBanner.Render("Error: " + m.errorMsg))
		content.WriteString("\n")
	}

	switch m.viewMode {
	case ViewHelp:
		content.WriteString(m.renderHelp(st))
	case ViewFilters:
		content.WriteString(m.renderToolbar(st))
		content.WriteString("\n")
		content.WriteString(m.renderFilterForm(st))
	default:
		content.WriteString(m.ui.tabs.View())
		content.WriteString("\n")
		content.WriteString(m.renderToolbar(st))
		content.WriteString("\n")
		content.WriteString(m.ui.table)
		content.WriteString("\n")
		content.WriteString(m.renderPager(st))
	}

	if m.status != "" {
		content.WriteString("\n")
		content.WriteString(st.infoBanner.Render(m.status))
	}

	content.WriteString("\n")
	content.WriteString(m.renderFooter(st))
	return content.String()
}

// renderHeader renders the title, the theme name and the KPI cards.
func (m Model) renderHeader(st styles) string {
	title := lipgloss.JoinHorizontal(lipgloss.Top, m.ui.title.View(), "  ", m.ui.themeName.View())
	cards := make([]string, len(m.ui.kpiCards))
	for i, card := range m.ui.kpiCards {
		cards[i] = card.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		st.header.Render(title),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)
}

// renderToolbar renders search, page size, sort and the filter indicator.
func (m Model) renderToolbar(st styles) string {
	state := m.view.State()

	direction := "▲"
	if state.SortReverse() {
		direction = "▼"
	}
	filters := m.ui.filterBtn.Text
	if n := state.ActiveFilterCount(); n > 0 {
		filters = st.indicator.Render(fmt.Sprintf("%s (%d)", m.ui.filterBtn.Text, n))
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Center,
		m.ui.search.View(), " ",
		st.muted.Render("Rows "), m.ui.pageSize.View(), " ",
		st.muted.Render("Sort "), m.ui.sort.View(), " "+direction+" ",
	)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		m.ui.filterBtn.View(), " ", m.ui.resetBtn.View(), " ", m.ui.exportBtn.View(), " ", m.ui.themeBtn.View(),
		"  ", filters,
	)
	return lipgloss.JoinVertical(lipgloss.Left, st.section.Render("Catalog"), controls, buttons)
}

// renderPager renders the page position and the filtered count.
func (m Model) renderPager(st styles) string {
	page := m.view.Snapshot()
	return st.muted.Render(fmt.Sprintf("Page %d of %d  •  %s", page.Page, page.TotalPages, page.Showing()))
}

func (m Model) renderFilterForm(st styles) string {
	f := m.form
	if f == nil {
		return ""
	}

	lines := []string{st.section.Render("Advanced filters")}
	for i, entry := range f.entries {
		label := fieldLabels[i]
		if f.focus == i {
			label = st.focused.Render(label)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center, fmt.Sprintf("%-12s", label), entry.View()))
	}

	heading := "Categories (none selected means all)"
	if f.focus == fieldCategories {
		heading = st.focused.Render(heading)
	}
	lines = append(lines, heading)
	if len(f.categories) == 0 {
		lines = append(lines, st.muted.Render("  no categories"))
	}
	for i, name := range f.categories {
		box := "[ ]"
		if f.selected[name] {
			box = "[x]"
		}
		cursor := "  "
		if f.focus == fieldCategories && i == f.cursor {
			cursor = "> "
		}
		lines = append(lines, cursor+box+" "+name)
	}
	if f.err != "" {
		lines = append(lines, st.errorBanner.Render(f.err))
	}
	return st.dialog.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderHelp(st styles) string {
	h := m.help
	h.ShowAll = true
	return lipgloss.JoinVertical(lipgloss.Left, st.section.Render("Keyboard shortcuts"), h.View(m.keys))
}

// renderFooter renders the footer with keyboard shortcuts
func (m Model) renderFooter(st styles) string {
	if m.viewMode == ViewFilters {
		return st.footer.Render(m.help.View(m.formKeys))
	}
	return st.footer.Render(m.help.View(m.keys))
}

// renderTable draws the page rows with p. The sort column header carries the
// sort direction.
func (ui *widgets) renderTable(page catalog.Page, p theme.Palette) {
	state := page.Filter
	headers := make([]string, 0, len(catalog.SortColumns()))
	for _, col := range catalog.SortColumns() {
		name := col.String()
		if col == state.SortColumn() {
			if state.SortReverse() {
				name += " ▼"
			} else {
				name += " ▲"
			}
		}
		headers = append(headers, name)
	}

	rows := make([][]string, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			truncate(r.Description, descriptionWidth),
			"$" + strconv.FormatInt(r.Price, 10),
			strconv.FormatInt(r.Quantity, 10),
			r.Category,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(p.Color(theme.RoleCardBorder))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			return tableStyle(p, row)
		})

	out := t.String()
	if len(rows) == 0 {
		out += "\n" + lipgloss.NewStyle().Foreground(p.Color(theme.RoleText)).Faint(true).Render("No products match the current filters")
	}
	ui.table = out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
