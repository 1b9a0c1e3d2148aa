package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// Update handles incoming messages and updates the model. Store calls run
// synchronously inside Update.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ui.chartWidth = max(msg.Width-4, defaultChartWidth/2)
		m.ui.drawCharts(m.board, m.engine.Theme())
		return m, nil

	case startMsg:
		if err := m.reload(); err != nil {
			cmd := m.fail(err)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ClearErrorMsg:
		if msg.Seq == m.errorSeq {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	// cursor blink and other input messages go to the focused entry
	switch {
	case m.viewMode == ViewFilters && m.form != nil:
		return m, m.form.update(msg)
	case m.ui.search.Focused():
		return m, m.ui.search.Update(msg)
	}
	return m, nil
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewFilters:
		return m.handleFormKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	default:
		if m.ui.search.Focused() {
			return m.handleSearchKeys(msg)
		}
		return m.handleCatalogKeys(msg)
	}
}

func (m Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		m.showError = false
		m.errorMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m, m.ui.search.Focus()

	case key.Matches(msg, m.keys.NextPage):
		return m.catalogAction(m.view.NextPage(m.ctx))

	case key.Matches(msg, m.keys.PrevPage):
		return m.catalogAction(m.view.PrevPage(m.ctx))

	case key.Matches(msg, m.keys.PageSize):
		m.ui.pageSize.Next()
		n, err := strconv.Atoi(m.ui.pageSize.Value())
		if err == nil {
			err = m.view.SetPageSize(m.ctx, n)
		}
		m.ui.pageSize.SetValue(strconv.Itoa(m.view.State().PageSize()))
		return m.catalogAction(err)

	case key.Matches(msg, m.keys.Sort):
		m.ui.sort.Next()
		return m.sortBy(m.ui.sort.Value())

	case key.Matches(msg, m.keys.SortColumn):
		idx := int(msg.String()[0] - '1')
		cols := catalog.SortColumns()
		if idx < 0 || idx >= len(cols) {
			return m, nil
		}
		return m.sortBy(cols[idx].String())

	case key.Matches(msg, m.keys.Filters):
		return m.openFilters()

	case key.Matches(msg, m.keys.Reset):
		m.ui.search.SetValue("")
		return m.catalogAction(m.view.Reset(m.ctx))

	case key.Matches(msg, m.keys.Export):
		return m.export()

	case key.Matches(msg, m.keys.Theme):
		if err := m.engine.Toggle(m.ctx); err != nil {
			cmd := m.fail(fmt.Errorf("redraw after theme change: %w", err))
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		if err := m.switchTab(1); err != nil {
			cmd := m.fail(err)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		if err := m.switchTab(-1); err != nil {
			cmd := m.fail(err)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if err := m.reload(); err != nil {
			cmd := m.fail(err)
			return m, cmd
		}
		cmd := m.notify("Data refreshed")
		return m, cmd
	}
	return m, nil
}

// handleSearchKeys edits the search entry. Every edit requeries.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyEnter:
		m.ui.search.Blur()
		return m, nil
	}

	before := m.ui.search.Value()
	cmd := m.ui.search.Update(msg)
	if m.ui.search.Value() == before {
		return m, cmd
	}
	if err := m.view.SetSearch(m.ctx, m.ui.search.Value()); err != nil {
		failCmd := m.fail(err)
		return m, tea.Batch(cmd, failCmd)
	}
	m.renderTable()
	return m, cmd
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.formKeys.Cancel):
		m.closeFilters()
		return m, nil

	case key.Matches(msg, m.formKeys.Apply):
		err := m.view.Apply(m.ctx, f.criteria())
		var vErr *apperrors.ValidationError
		if errors.As(err, &vErr) {
			f.err = vErr.Error()
			return m, nil
		}
		m.closeFilters()
		return m.catalogAction(err)

	case key.Matches(msg, m.formKeys.Next):
		return m, f.move(1)

	case key.Matches(msg, m.formKeys.Prev):
		return m, f.move(-1)
	}

	if f.focus == fieldCategories {
		switch {
		case key.Matches(msg, m.formKeys.Up):
			f.moveCursor(-1)
		case key.Matches(msg, m.formKeys.Down):
			f.moveCursor(1)
		case key.Matches(msg, m.formKeys.Toggle):
			f.toggleCategory()
		}
		return m, nil
	}
	return m, f.update(msg)
}

// handleHelpKeys handles keys in help view
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.viewMode = ViewCatalog
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// catalogAction finishes a catalog transition: the table is redrawn on success
// and the error is shown otherwise.
func (m Model) catalogAction(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		cmd := m.fail(err)
		return m, cmd
	}
	m.renderTable()
	return m, nil
}

func (m Model) sortBy(name string) (tea.Model, tea.Cmd) {
	for _, col := range catalog.SortColumns() {
		if col.String() == name {
			err := m.view.ToggleSort(m.ctx, col)
			m.ui.sort.SetValue(m.view.State().SortColumn().String())
			return m.catalogAction(err)
		}
	}
	return m, nil
}

func (m Model) openFilters() (tea.Model, tea.Cmd) {
	categories, err := m.analytics.CategoryNames(m.ctx)
	if err != nil {
		cmd := m.fail(err)
		return m, cmd
	}
	m.ui.search.Blur()
	m.form = openFilterForm(m.engine, m.view.State(), categories)
	m.viewMode = ViewFilters
	return m, nil
}

func (m *Model) closeFilters() {
	if m.form != nil {
		m.form.close(m.engine)
	}
	m.form = nil
	m.viewMode = ViewCatalog
}

func (m Model) export() (tea.Model, tea.Cmd) {
	res, err := m.exporter.Export(m.ctx, m.view.State())
	if err != nil {
		cmd := m.fail(err)
		return m, cmd
	}
	cmd := m.notify(fmt.Sprintf("Exported %d rows to %s (%s)", res.Rows, res.Path, strings.Join(res.Summary, "; ")))
	return m, cmd
}

var _ tea.Model = Model{}
