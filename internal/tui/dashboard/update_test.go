package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	"github.com/alexisbeaulieu97/stockroom/internal/charts"
	"github.com/alexisbeaulieu97/stockroom/internal/preferences"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

func rowNames(p catalog.Page) []string {
	names := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		names[i] = r.Name
	}
	return names
}

func TestSearchRequeriesOnEveryEdit(t *testing.T) {
	t.Parallel()

	m := newHarness(t).started(t)
	m = send(m, keys("/")...)
	require.True(t, m.ui.search.Focused())

	m = send(m, keys("c", "h", "o")...)
	assert.Equal(t, []string{"Chocolate"}, rowNames(m.Page()))
	assert.Equal(t, "Showing 1 of 4 products", m.Page().Showing())

	m = send(m, keys("backspace", "backspace", "backspace")...)
	assert.Len(t, m.Page().Rows, 4)

	m = send(m, keys("esc")...)
	assert.False(t, m.ui.search.Focused())

	m = send(m, keys("q")...)
	assert.Len(t, m.Page().Rows, 4, "q is a command once the search box is blurred")
}

func TestTabSwitchPersistsAndLoadsCharts(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.started(t)

	m = send(m, keys("tab")...)
	assert.Equal(t, charts.TabProducts, m.ActiveTab())
	assert.Contains(t, m.ui.chartView[charts.TabProducts].Text, "Top Products by Value")

	stored, err := os.ReadFile(h.tabFile)
	require.NoError(t, err)
	assert.Equal(t, "Products", strings.TrimSpace(string(stored)))

	m = send(m, keys("shift+tab", "shift+tab")...)
	assert.Equal(t, charts.TabTrends, m.ActiveTab())
	assert.Contains(t, m.ui.chartView[charts.TabTrends].Text, "No products with low stock")
	assert.Zero(t, h.board.Open())
}

func TestPagingAndPageSize(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	books, err := h.store.CategoryByName(ctx, "Books")
	require.NoError(t, err)
	for i := range 11 {
		_, err := h.store.CreateProduct(ctx, catalog.Product{Name: "Novel " + string(rune('A'+i)), Price: 12, Quantity: 30, CategoryID: books.ID})
		require.NoError(t, err)
	}

	m := h.started(t)
	assert.Equal(t, 2, m.Page().TotalPages)

	m = send(m, keys("right")...)
	assert.Equal(t, 2, m.Page().Page)
	assert.Len(t, m.Page().Rows, 5)

	m = send(m, keys("right")...)
	assert.Equal(t, 2, m.Page().Page, "next on the last page is a no-op")

	m = send(m, keys("p")...)
	assert.Equal(t, "25", m.ui.pageSize.Value())
	assert.Equal(t, 25, m.Page().PageSize)
	assert.Equal(t, 1, m.Page().Page, "page is clamped into the new range")
	assert.Len(t, m.Page().Rows, 15)

	m = send(m, keys("left")...)
	assert.Equal(t, 1, m.Page().Page)
}

func TestSortKeysToggleDirection(t *testing.T) {
	t.Parallel()

	m := newHarness(t).started(t)

	m = send(m, keys("4")...)
	assert.Equal(t, "Price", m.ui.sort.Value())
	assert.Equal(t, []string{"Chocolate", "T-shirt", "Python Book", "Laptop"}, rowNames(m.Page()))
	assert.Contains(t, m.ui.table, "Price ▲")

	m = send(m, keys("4")...)
	assert.Equal(t, []string{"Laptop", "Python Book", "T-shirt", "Chocolate"}, rowNames(m.Page()))
	assert.Contains(t, m.ui.table, "Price ▼")

	m = send(m, keys("s")...)
	assert.Equal(t, "Quantity", m.ui.sort.Value())
	assert.False(t, m.view.State().SortReverse())
	assert.Equal(t, "Laptop", m.Page().Rows[0].Name)
}

func TestFilterDialogAppliesCriteria(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.started(t)

	m = send(m, keys("f")...)
	require.Equal(t, ViewFilters, m.GetViewMode())
	require.NotNil(t, m.form)
	assert.Equal(t, 7, h.engine.Registry().Len(), "dialog entries are registered")
	assert.Equal(t, []string{"Books", "Clothing", "Electronics", "Food"}, m.form.categories)
	assert.Equal(t, "10000", m.form.entries[fieldPriceMax].Value())

	m.form.entries[fieldPriceMax].SetValue("50")
	m = send(m, keys("enter")...)
	assert.Equal(t, ViewCatalog, m.GetViewMode())
	assert.Nil(t, m.form)
	assert.ElementsMatch(t, []string{"T-shirt", "Chocolate", "Python Book"}, rowNames(m.Page()))
	assert.Equal(t, 1, m.view.State().ActiveFilterCount())

	require.NoError(t, h.engine.Toggle(context.Background()))
	assert.Equal(t, 3, h.engine.Registry().Len(), "closed dialog entries are pruned on the next theme change")
}

func TestFilterDialogCategories(t *testing.T) {
	t.Parallel()

	m := newHarness(t).started(t)
	m = send(m, keys("f", "tab", "tab", "tab", "tab")...)
	require.Equal(t, fieldCategories, m.form.focus)

	m = send(m, keys("space", "down", "down", "space")...)
	assert.Equal(t, []string{"Books", "Electronics"}, m.form.selectedCategories())

	m = send(m, keys("enter")...)
	assert.ElementsMatch(t, []string{"Laptop", "Python Book"}, rowNames(m.Page()))
	assert.Equal(t, "Showing 2 of 4 products", m.Page().Showing())

	m = send(m, keys("f")...)
	assert.Equal(t, []string{"Books", "Electronics"}, m.form.selectedCategories(), "dialog reopens with the applied state")
}

func TestFilterDialogRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	m := newHarness(t).started(t)
	m = send(m, keys("f")...)
	m.form.entries[fieldPriceMin].SetValue("abc")

	m = send(m, keys("enter")...)
	assert.Equal(t, ViewFilters, m.GetViewMode(), "dialog stays open")
	assert.Contains(t, m.form.err, "price_min")
	assert.False(t, m.view.State().IsActive())
	assert.Len(t, m.Page().Rows, 4)

	m.form.entries[fieldPriceMin].SetValue("100")
	m.form.entries[fieldPriceMax].SetValue("50")
	m = send(m, keys("enter")...)
	assert.Equal(t, ViewFilters, m.GetViewMode())
	assert.Contains(t, m.form.err, "price_min")

	m = send(m, keys("esc")...)
	assert.Equal(t, ViewCatalog, m.GetViewMode())
	assert.Len(t, m.Page().Rows, 4)
}

func TestResetClearsSearchAndFilters(t *testing.T) {
	t.Parallel()

	m := newHarness(t).started(t)
	m = send(m, keys("/", "l", "a", "p", "enter")...)
	require.Equal(t, []string{"Laptop"}, rowNames(m.Page()))

	m = send(m, keys("c")...)
	assert.Equal(t, "", m.ui.search.Value())
	assert.Len(t, m.Page().Rows, 4)
	assert.False(t, m.view.State().IsActive())
}

func TestThemeToggleRestylesAndPersists(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.started(t)
	m = send(m, keys("/", "c", "h", "o", "esc")...)

	m = send(m, keys("t")...)
	assert.False(t, m.showError)
	assert.Equal(t, theme.Dark, h.engine.Theme().ID)
	stored, _ := h.prefs.Load(preferences.KeyTheme)
	assert.Equal(t, "dark", stored)

	assert.Equal(t, "Dark mode", m.ui.themeName.Text)
	assert.Equal(t, "cho", m.ui.search.Value(), "entry value survives the restyle")
	assert.Equal(t, theme.ForID(theme.Dark).Palette.Color(theme.RoleCardBackground), m.ui.search.Colors()["fg_color"])
	assert.Equal(t, theme.ForID(theme.Dark).Palette.Color(theme.RoleKPIBlue), m.ui.kpiValues[0].Colors()["text_color"])
	assert.Contains(t, m.ui.chartView[charts.TabOverview].Text, "Product Distribution")
	assert.Contains(t, m.ui.table, "Chocolate")
	assert.Zero(t, h.board.Open())

	m = send(m, keys("c")...)
	require.Equal(t, 4, m.Page().TotalItems)

	ctx := context.Background()
	food, err := h.store.CategoryByName(ctx, "Food")
	require.NoError(t, err)
	_, err = h.store.CreateProduct(ctx, catalog.Product{Name: "Gum", Price: 1, Quantity: 40, CategoryID: food.ID})
	require.NoError(t, err)

	m = send(m, keys("t")...)
	assert.False(t, m.showError, m.errorMsg)
	assert.Equal(t, theme.Light, h.engine.Theme().ID)
	assert.Equal(t, "Light mode", m.ui.themeName.Text)
	assert.Equal(t, 5, m.Page().TotalItems, "restyle reloads the catalog")
	assert.Contains(t, m.ui.table, "Gum")
}

func TestExportWritesFilteredRows(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.started(t)
	m = send(m, keys("/", "b", "o", "o", "k", "esc", "e")...)

	assert.False(t, m.showError, m.errorMsg)
	assert.Contains(t, m.status, "Exported 1 rows")
	assert.Contains(t, m.status, "Search: 'book'")

	entries, err := os.ReadDir(h.exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "products_filtered_"))

	data, err := os.ReadFile(filepath.Join(h.exportDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Python Book")

	m = send(m, ClearStatusMsg{Seq: m.statusSeq - 1})
	assert.NotEmpty(t, m.status, "stale clear is ignored")
	m = send(m, ClearStatusMsg{Seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestStoreErrorShowsBanner(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.started(t)
	before := m.Page()
	require.NoError(t, h.store.Close())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	assert.True(t, m.showError)
	assert.NotNil(t, cmd, "the banner is scheduled to clear")
	assert.Equal(t, before.TotalItems, m.Page().TotalItems, "failed requery keeps the previous page")
	assert.Contains(t, m.View(), "Error:")

	m = send(m, keys("x")...)
	assert.False(t, m.showError)
}

func TestErrorBannerClearsOnlyItsOwnError(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.started(t)
	require.NoError(t, h.store.Close())

	m = send(m, keys("r")...)
	first := m.errorSeq
	m = send(m, keys("r")...)
	require.True(t, m.showError)

	m = send(m, ClearErrorMsg{Seq: first})
	assert.True(t, m.showError, "a newer error outlives the older timer")
	m = send(m, ClearErrorMsg{Seq: m.errorSeq})
	assert.False(t, m.showError)
	assert.Empty(t, m.errorMsg)
}

func TestHelpMode(t *testing.T) {
	t.Parallel()

	m := newHarness(t).started(t)
	m = send(m, keys("?")...)
	assert.Equal(t, ViewHelp, m.GetViewMode())
	assert.Contains(t, m.View(), "Keyboard shortcuts")

	m = send(m, keys("esc")...)
	assert.Equal(t, ViewCatalog, m.GetViewMode())
}

func TestQuitReturnsQuitCommand(t *testing.T) {
	t.Parallel()

	m := newHarness(t).started(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
