package dashboard

import (
	"slices"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

const (
	fieldPriceMin = iota
	fieldPriceMax
	fieldStockMin
	fieldStockMax
	fieldCategories
	fieldCount
)

var fieldLabels = [fieldCategories]string{"Min price", "Max price", "Min stock", "Max stock"}

// filterForm is the advanced filter dialog. Its entries are registered with the
// theme engine while the dialog is open and destroyed when it closes.
type filterForm struct {
	entries    [fieldCategories]*theme.Entry
	handles    [fieldCategories]theme.Handle
	categories []string
	selected   map[string]bool
	focus      int
	cursor     int
	err        string
}

func openFilterForm(engine *theme.Engine, state catalog.FilterState, categories []string) *filterForm {
	f := &filterForm{categories: categories, selected: map[string]bool{}}

	priceMin, priceMax := state.PriceRange()
	stockMin, stockMax := state.StockRange()
	values := [fieldCategories]string{
		strconv.FormatFloat(priceMin, 'f', -1, 64),
		strconv.FormatFloat(priceMax, 'f', -1, 64),
		strconv.FormatInt(stockMin, 10),
		strconv.FormatInt(stockMax, 10),
	}
	for i := range f.entries {
		f.entries[i], f.handles[i] = engine.NewEntry(fieldLabels[i])
		f.entries[i].SetValue(values[i])
	}
	for _, name := range state.Categories() {
		f.selected[name] = true
	}
	f.entries[fieldPriceMin].Focus()
	return f
}

func (f *filterForm) criteria() catalog.Criteria {
	c := catalog.Criteria{
		PriceMin: f.entries[fieldPriceMin].Value(),
		PriceMax: f.entries[fieldPriceMax].Value(),
		StockMin: f.entries[fieldStockMin].Value(),
		StockMax: f.entries[fieldStockMax].Value(),
	}
	for _, name := range f.categories {
		if f.selected[name] {
			c.Categories = append(c.Categories, name)
		}
	}
	return c
}

// move shifts focus by delta across the four entries and the category list.
func (f *filterForm) move(delta int) tea.Cmd {
	if f.focus < fieldCategories {
		f.entries[f.focus].Blur()
	}
	f.focus = ((f.focus+delta)%fieldCount + fieldCount) % fieldCount
	if f.focus < fieldCategories {
		return f.entries[f.focus].Focus()
	}
	return nil
}

func (f *filterForm) moveCursor(delta int) {
	if n := len(f.categories); n > 0 {
		f.cursor = ((f.cursor+delta)%n + n) % n
	}
}

func (f *filterForm) toggleCategory() {
	if f.cursor < len(f.categories) {
		name := f.categories[f.cursor]
		f.selected[name] = !f.selected[name]
	}
}

func (f *filterForm) selectedCategories() []string {
	var out []string
	for name, on := range f.selected {
		if on {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// update forwards a message to the focused entry.
func (f *filterForm) update(msg tea.Msg) tea.Cmd {
	if f.focus < fieldCategories {
		return f.entries[f.focus].Update(msg)
	}
	return nil
}

func (f *filterForm) close(engine *theme.Engine) {
	for _, h := range f.handles {
		engine.Destroy(h)
	}
}
