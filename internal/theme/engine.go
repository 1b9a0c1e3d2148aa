package theme

import (
	"context"
	"errors"

	"github.com/alexisbeaulieu97/stockroom/internal/logger"
	"github.com/alexisbeaulieu97/stockroom/internal/preferences"
)

// Listener is notified after a theme has been applied to every control, to
// redraw content that is rendered from data rather than held in controls.
type Listener func(ctx context.Context, t Theme) error

// Engine owns the active theme and propagates it to the live control tree and
// to registered controls.
type Engine struct {
	current   Theme
	prefs     preferences.Repository
	root      Control
	table     *Table
	registry  *Registry
	listeners []Listener
	log       *logger.Logger
}

// NewEngine restores the persisted theme id. A missing or invalid value means light.
func NewEngine(prefs preferences.Repository, log *logger.Logger) *Engine {
	id := Light
	if prefs != nil {
		if raw, ok := prefs.Load(preferences.KeyTheme); ok {
			if parsed, valid := ParseID(raw); valid {
				id = parsed
			} else {
				log.Debug("ignoring unknown theme preference", "value", raw)
			}
		}
	}

	table := NewTable()
	return &Engine{
		current:  ForID(id),
		prefs:    prefs,
		table:    table,
		registry: NewRegistry(table, log),
		log:      log,
	}
}

func (e *Engine) Theme() Theme        { return e.current }
func (e *Engine) Table() *Table       { return e.table }
func (e *Engine) Registry() *Registry { return e.registry }

// SetRoot installs the control tree and styles it with the current palette.
func (e *Engine) SetRoot(root Control) {
	e.root = root
	Walk(root, e.current.Palette)
}

// OnChange adds a listener called after every theme change, in registration order.
func (e *Engine) OnChange(l Listener) {
	e.listeners = append(e.listeners, l)
}

// NewEntry creates a registered text entry styled with the current palette.
func (e *Engine) NewEntry(placeholder string) (*Entry, Handle) {
	entry := newEntry(placeholder)
	return entry, e.register(entry)
}

// NewComboBox creates a registered combo box styled with the current palette.
func (e *Engine) NewComboBox(options []string) (*ComboBox, Handle) {
	box := newComboBox(options)
	return box, e.register(box)
}

func (e *Engine) register(c Control) Handle {
	c.Apply(e.current.Palette)
	h := e.table.Insert(c)
	e.registry.Register(h, c.Kind())
	return h
}

// Destroy releases a control created by NewEntry or NewComboBox. Its registry
// entry is dropped on the next propagation.
func (e *Engine) Destroy(h Handle) {
	e.table.Destroy(h)
}

// Toggle switches between light and dark.
func (e *Engine) Toggle(ctx context.Context) error {
	return e.Set(ctx, e.current.ID.Toggle())
}

// Set activates id, persists it, restyles the tree and the registry, and notifies
// listeners. A persistence failure is logged and does not stop the switch.
// Listener errors are joined and returned after every listener has run.
func (e *Engine) Set(ctx context.Context, id ID) error {
	e.current = ForID(id)

	if e.prefs != nil {
		if err := e.prefs.Save(preferences.KeyTheme, string(e.current.ID)); err != nil {
			e.log.Error(err, "theme preference not saved", "theme", string(e.current.ID))
		}
	}

	Walk(e.root, e.current.Palette)
	applied, pruned := e.registry.Flush(e.current.Palette)
	e.log.Debug("theme applied", "theme", string(e.current.ID), "registered", applied, "pruned", pruned)

	var errs []error
	for _, l := range e.listeners {
		if err := l(ctx, e.current); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Walk restyles frames, labels, buttons and tab containers reachable from root,
// dispatching on each control's Kind. Entries and combo boxes are left to the
// Registry.
func Walk(root Control, p Palette) {
	if root == nil {
		return
	}
	switch root.Kind() {
	case KindEntry, KindComboBox:
		return
	}
	root.Apply(p)
	for _, child := range root.nested() {
		Walk(child, p)
	}
}
