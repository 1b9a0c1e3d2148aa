package theme

import (
	"github.com/alexisbeaulieu97/stockroom/internal/logger"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// Handle refers to a control in a Table. A handle outlives its control; once the
// control is destroyed the handle's generation no longer matches its slot.
type Handle struct {
	slot int
	gen  uint32
}

type tableSlot struct {
	gen     uint32
	control Control
}

// Table owns dynamically created controls and hands out handles to them.
type Table struct {
	slots []tableSlot
	free  []int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Insert stores c and returns its handle.
func (t *Table) Insert(c Control) Handle {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[idx].control = c
		return Handle{slot: idx, gen: t.slots[idx].gen}
	}
	t.slots = append(t.slots, tableSlot{control: c})
	return Handle{slot: len(t.slots) - 1}
}

// Get resolves h. It reports false once the control has been destroyed, even if
// the slot has been reused.
func (t *Table) Get(h Handle) (Control, bool) {
	if h.slot < 0 || h.slot >= len(t.slots) {
		return nil, false
	}
	s := t.slots[h.slot]
	if s.gen != h.gen || s.control == nil {
		return nil, false
	}
	return s.control, true
}

// Destroy releases the control behind h. Destroying a stale handle is a no-op.
func (t *Table) Destroy(h Handle) {
	if _, ok := t.Get(h); !ok {
		return
	}
	t.slots[h.slot].control = nil
	t.slots[h.slot].gen++
	t.free = append(t.free, h.slot)
}

// Len counts live controls.
func (t *Table) Len() int {
	return len(t.slots) - len(t.free)
}

type registryEntry struct {
	handle Handle
	kind   Kind
}

// Registry lists controls the tree walk does not restyle. It does not own them
// and is not told when they are destroyed; stale entries are dropped on Flush.
type Registry struct {
	table   *Table
	entries []registryEntry
	log     *logger.Logger
}

func NewRegistry(table *Table, log *logger.Logger) *Registry {
	return &Registry{table: table, log: log}
}

// Register records h under kind.
func (r *Registry) Register(h Handle, kind Kind) {
	r.entries = append(r.entries, registryEntry{handle: h, kind: kind})
}

// Len counts registered entries, stale ones included until the next Flush.
func (r *Registry) Len() int { return len(r.entries) }

// Flush applies p to every live registered control and drops entries whose
// control is gone, keeping the order of the survivors. It returns how many
// controls were restyled and how many entries were pruned.
func (r *Registry) Flush(p Palette) (applied, pruned int) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		c, ok := r.table.Get(e.handle)
		if !ok || c.Kind() != e.kind {
			r.log.Debug("pruning themed control",
				"error", apperrors.NewRegistryInconsistency(e.kind.String(), e.handle.slot, e.handle.gen).Error())
			pruned++
			continue
		}
		c.Apply(p)
		applied++
		kept = append(kept, e)
	}
	clear(r.entries[len(kept):])
	r.entries = kept
	return applied, pruned
}
