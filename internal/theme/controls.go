package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Kind tags a control variant. It is fixed at construction.
type Kind int

const (
	KindFrame Kind = iota
	KindLabel
	KindButton
	KindEntry
	KindComboBox
	KindTabContainer
)

func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindLabel:
		return "label"
	case KindButton:
		return "button"
	case KindEntry:
		return "entry"
	case KindComboBox:
		return "combobox"
	case KindTabContainer:
		return "tabcontainer"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Control is one of Frame, Label, Button, Entry, ComboBox or TabContainer. The set
// is closed.
type Control interface {
	Kind() Kind
	// Apply restyles the control in place. User-entered state is untouched.
	Apply(p Palette)
	// Colors reports the currently applied colour properties.
	Colors() Props
	View() string
	// nested lists the controls the tree walk descends into.
	nested() []Control
	sealed()
}

// Props is a snapshot of a control's colour properties keyed by property name.
type Props map[string]lipgloss.Color

const onColor = lipgloss.Color("#ffffff")

// Frame groups children. A transparent frame keeps no background of its own.
type Frame struct {
	Transparent bool
	Border      bool
	children    []Control
	background  lipgloss.Color
	border      lipgloss.Color
}

func NewFrame(children ...Control) *Frame {
	return &Frame{children: children}
}

func (f *Frame) Kind() Kind        { return KindFrame }
func (f *Frame) sealed()           {}
func (f *Frame) nested() []Control { return f.children }

// Add appends children.
func (f *Frame) Add(children ...Control) { f.children = append(f.children, children...) }

// Children returns the direct children.
func (f *Frame) Children() []Control { return f.children }

func (f *Frame) Apply(p Palette) {
	f.border = p.Color(RoleCardBorder)
	if f.Transparent {
		f.background = ""
		return
	}
	f.background = p.Color(RoleCardBackground)
}

func (f *Frame) Colors() Props {
	return Props{"fg_color": f.background, "border_color": f.border}
}

func (f *Frame) View() string {
	parts := make([]string, 0, len(f.children))
	for _, c := range f.children {
		parts = append(parts, c.View())
	}
	style := lipgloss.NewStyle()
	if f.background != "" {
		style = style.Background(f.background)
	}
	if f.Border {
		style = style.Border(lipgloss.RoundedBorder()).BorderForeground(f.border).Padding(0, 1)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Label shows text in a role colour, RoleText unless stated otherwise.
type Label struct {
	Text  string
	Bold  bool
	role  Role
	color lipgloss.Color
}

func NewLabel(text string) *Label {
	return &Label{Text: text, role: RoleText}
}

// NewAccentLabel creates a label coloured by role, such as a KPI accent.
func NewAccentLabel(text string, role Role) *Label {
	return &Label{Text: text, role: role}
}

func (l *Label) Kind() Kind        { return KindLabel }
func (l *Label) sealed()           {}
func (l *Label) nested() []Control { return nil }
func (l *Label) Apply(p Palette)   { l.color = p.Color(l.role) }
func (l *Label) Colors() Props     { return Props{"text_color": l.color} }

func (l *Label) View() string {
	return lipgloss.NewStyle().Foreground(l.color).Bold(l.Bold).Render(l.Text)
}

// ButtonRole is the semantic colour of a button, stored at construction.
type ButtonRole int

const (
	ButtonPrimary ButtonRole = iota
	ButtonSuccess
	ButtonDanger
	ButtonWarning
)

func (r ButtonRole) role() Role {
	switch r {
	case ButtonSuccess:
		return RoleSuccess
	case ButtonDanger:
		return RoleDanger
	case ButtonWarning:
		return RoleWarning
	default:
		return RolePrimary
	}
}

type Button struct {
	Text  string
	Role  ButtonRole
	fill  lipgloss.Color
	hover lipgloss.Color
}

func NewButton(text string, role ButtonRole) *Button {
	return &Button{Text: text, Role: role}
}

func (b *Button) Kind() Kind        { return KindButton }
func (b *Button) sealed()           {}
func (b *Button) nested() []Control { return nil }

func (b *Button) Apply(p Palette) {
	b.fill = p.Color(b.Role.role())
	b.hover = p.Color(RoleSecondary)
}

func (b *Button) Colors() Props {
	return Props{"fg_color": b.fill, "hover_color": b.hover, "text_color": onColor}
}

func (b *Button) View() string {
	return lipgloss.NewStyle().Background(b.fill).Foreground(onColor).Padding(0, 1).Render(b.Text)
}

// Entry is a single-line text input.
type Entry struct {
	Input       textinput.Model
	fill        lipgloss.Color
	text        lipgloss.Color
	border      lipgloss.Color
	placeholder lipgloss.Color
}

func newEntry(placeholder string) *Entry {
	in := textinput.New()
	in.Placeholder = placeholder
	return &Entry{Input: in}
}

func (e *Entry) Kind() Kind        { return KindEntry }
func (e *Entry) sealed()           {}
func (e *Entry) nested() []Control { return nil }

// Apply changes only the input's styles; its value, cursor and focus survive.
func (e *Entry) Apply(p Palette) {
	e.fill = p.Color(RoleCardBackground)
	e.text = p.Color(RoleText)
	e.border = p.Color(RolePrimary)
	e.placeholder = p.Color(RoleText)

	e.Input.TextStyle = lipgloss.NewStyle().Foreground(e.text).Background(e.fill)
	e.Input.PromptStyle = lipgloss.NewStyle().Foreground(e.border)
	e.Input.PlaceholderStyle = lipgloss.NewStyle().Foreground(e.placeholder).Faint(true)
	e.Input.Cursor.Style = lipgloss.NewStyle().Foreground(e.border)
}

func (e *Entry) Colors() Props {
	return Props{
		"fg_color":               e.fill,
		"text_color":             e.text,
		"border_color":           e.border,
		"placeholder_text_color": e.placeholder,
	}
}

func (e *Entry) Value() string     { return e.Input.Value() }
func (e *Entry) SetValue(v string) { e.Input.SetValue(v) }
func (e *Entry) Focus() tea.Cmd    { return e.Input.Focus() }
func (e *Entry) Blur()             { e.Input.Blur() }
func (e *Entry) Focused() bool     { return e.Input.Focused() }

// Update forwards a message to the input.
func (e *Entry) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.Input, cmd = e.Input.Update(msg)
	return cmd
}

func (e *Entry) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(e.border).
		Render(e.Input.View())
}

// ComboBox picks one of a fixed option list.
type ComboBox struct {
	options       []string
	selected      int
	fill          lipgloss.Color
	text          lipgloss.Color
	button        lipgloss.Color
	buttonHover   lipgloss.Color
	border        lipgloss.Color
	dropdownFill  lipgloss.Color
	dropdownHover lipgloss.Color
	dropdownText  lipgloss.Color
}

func newComboBox(options []string) *ComboBox {
	return &ComboBox{options: append([]string(nil), options...)}
}

func (c *ComboBox) Kind() Kind        { return KindComboBox }
func (c *ComboBox) sealed()           {}
func (c *ComboBox) nested() []Control { return nil }

// Apply restyles the box; the selection is kept.
func (c *ComboBox) Apply(p Palette) {
	c.fill = p.Color(RoleCardBackground)
	c.text = p.Color(RoleText)
	c.button = p.Color(RolePrimary)
	c.buttonHover = p.Color(RoleSecondary)
	c.border = p.Color(RolePrimary)
	c.dropdownFill = p.Color(RoleCardBackground)
	c.dropdownHover = p.Color(RoleHover)
	c.dropdownText = p.Color(RoleText)
}

func (c *ComboBox) Colors() Props {
	return Props{
		"fg_color":             c.fill,
		"text_color":           c.text,
		"button_color":         c.button,
		"button_hover_color":   c.buttonHover,
		"border_color":         c.border,
		"dropdown_fg_color":    c.dropdownFill,
		"dropdown_hover_color": c.dropdownHover,
		"dropdown_text_color":  c.dropdownText,
	}
}

func (c *ComboBox) Options() []string { return append([]string(nil), c.options...) }

// Value returns the selected option, or "" when there are none.
func (c *ComboBox) Value() string {
	if len(c.options) == 0 {
		return ""
	}
	return c.options[c.selected]
}

// SetValue selects v if it is one of the options.
func (c *ComboBox) SetValue(v string) bool {
	for i, o := range c.options {
		if o == v {
			c.selected = i
			return true
		}
	}
	return false
}

// Next selects the following option, wrapping around.
func (c *ComboBox) Next() {
	if len(c.options) > 0 {
		c.selected = (c.selected + 1) % len(c.options)
	}
}

// Prev selects the preceding option, wrapping around.
func (c *ComboBox) Prev() {
	if len(c.options) > 0 {
		c.selected = (c.selected - 1 + len(c.options)) % len(c.options)
	}
}

func (c *ComboBox) View() string {
	value := lipgloss.NewStyle().Foreground(c.text).Background(c.fill).Padding(0, 1).Render(c.Value())
	arrow := lipgloss.NewStyle().Foreground(onColor).Background(c.button).Render(" ▾ ")
	return lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(c.border).
		Render(value + arrow)
}

// Tab is a named page of a TabContainer.
type Tab struct {
	Name    string
	Content *Frame
}

// TabContainer shows one of several tabs with a segmented selector.
type TabContainer struct {
	tabs       []Tab
	active     int
	fill       lipgloss.Color
	selected   lipgloss.Color
	hover      lipgloss.Color
	unselected lipgloss.Color
	text       lipgloss.Color
}

func NewTabContainer(names ...string) *TabContainer {
	tabs := make([]Tab, len(names))
	for i, name := range names {
		tabs[i] = Tab{Name: name, Content: NewFrame()}
	}
	return &TabContainer{tabs: tabs}
}

func (t *TabContainer) Kind() Kind { return KindTabContainer }
func (t *TabContainer) sealed()    {}

// nested skips the tab pages themselves, which Apply styles, and descends into
// their contents.
func (t *TabContainer) nested() []Control {
	var out []Control
	for _, tab := range t.tabs {
		out = append(out, tab.Content.children...)
	}
	return out
}

// Apply restyles the container and every tab page.
func (t *TabContainer) Apply(p Palette) {
	t.fill = p.Color(RoleCardBackground)
	t.selected = p.Color(RolePrimary)
	t.hover = p.Color(RoleSecondary)
	t.unselected = p.Color(RoleAccent)
	t.text = p.Color(RoleText)
	for _, tab := range t.tabs {
		tab.Content.Apply(p)
	}
}

func (t *TabContainer) Colors() Props {
	return Props{
		"fg_color":                          t.fill,
		"segmented_button_selected_color":   t.selected,
		"segmented_button_selected_hover":   t.hover,
		"segmented_button_unselected_color": t.unselected,
		"text_color":                        t.text,
	}
}

func (t *TabContainer) Tabs() []Tab { return t.tabs }

// Tab returns the page named name.
func (t *TabContainer) Tab(name string) (Tab, bool) {
	for _, tab := range t.tabs {
		if tab.Name == name {
			return tab, true
		}
	}
	return Tab{}, false
}

func (t *TabContainer) Active() string {
	if len(t.tabs) == 0 {
		return ""
	}
	return t.tabs[t.active].Name
}

// Select activates the tab named name. It reports false for unknown names.
func (t *TabContainer) Select(name string) bool {
	for i, tab := range t.tabs {
		if tab.Name == name {
			t.active = i
			return true
		}
	}
	return false
}

// Cycle moves the selection by delta, wrapping around.
func (t *TabContainer) Cycle(delta int) {
	if n := len(t.tabs); n > 0 {
		t.active = ((t.active+delta)%n + n) % n
	}
}

func (t *TabContainer) View() string {
	headers := make([]string, len(t.tabs))
	for i, tab := range t.tabs {
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(onColor).Background(t.unselected)
		if i == t.active {
			style = style.Background(t.selected).Bold(true)
		}
		headers[i] = style.Render(tab.Name)
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, headers...)
	if len(t.tabs) == 0 {
		return bar
	}
	body := t.tabs[t.active].Content.View()
	return lipgloss.JoinVertical(lipgloss.Left, bar, strings.TrimRight(body, "\n"))
}
