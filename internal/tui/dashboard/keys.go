package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every catalog screen binding. It satisfies help.KeyMap.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Search     key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	PageSize   key.Binding
	Sort       key.Binding
	SortColumn key.Binding
	Filters    key.Binding
	Reset      key.Binding
	Export     key.Binding
	Theme      key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Refresh    key.Binding
	Dismiss    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "prev page")),
		PageSize:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "page size")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		SortColumn: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "sort by column")),
		Filters:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Reset:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next chart tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev chart tab")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Dismiss:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss error")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filters, k.PrevPage, k.NextPage, k.Export, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Filters, k.Reset, k.Refresh},
		{k.PrevPage, k.NextPage, k.PageSize, k.Sort, k.SortColumn},
		{k.NextTab, k.PrevTab, k.Theme, k.Export},
		{k.Dismiss, k.Help, k.Quit},
	}
}

// formKeys are the filter dialog bindings.
type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Apply  key.Binding
	Cancel key.Binding
}

func defaultFormKeys() formKeys {
	return formKeys{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle category")),
		Apply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Down, k.Toggle, k.Apply, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
