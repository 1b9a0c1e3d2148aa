package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableGenerations(t *testing.T) {
	t.Parallel()

	table := NewTable()
	a := table.Insert(NewLabel("a"))
	b := table.Insert(NewLabel("b"))
	require.Equal(t, 2, table.Len())

	table.Destroy(a)
	_, ok := table.Get(a)
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())

	c := table.Insert(NewLabel("c"))
	assert.Equal(t, a.slot, c.slot, "slot is reused")
	_, ok = table.Get(a)
	assert.False(t, ok, "old handle stays stale after reuse")

	got, ok := table.Get(c)
	require.True(t, ok)
	assert.Equal(t, "c", got.(*Label).Text)

	table.Destroy(a)
	_, ok = table.Get(c)
	assert.True(t, ok, "destroying a stale handle does not affect the new occupant")

	_, ok = table.Get(Handle{slot: 99})
	assert.False(t, ok)
	_, ok = table.Get(b)
	assert.True(t, ok)
}

func TestRegistryFlushPrunesInOrder(t *testing.T) {
	t.Parallel()

	table := NewTable()
	reg := NewRegistry(table, nil)

	var boxes []*ComboBox
	var handles []Handle
	for _, name := range []string{"a", "b", "c", "d"} {
		box := newComboBox([]string{name})
		h := table.Insert(box)
		reg.Register(h, KindComboBox)
		boxes = append(boxes, box)
		handles = append(handles, h)
	}

	table.Destroy(handles[1])
	table.Destroy(handles[3])

	dark := ForID(Dark).Palette
	applied, pruned := reg.Flush(dark)
	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, pruned)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []registryEntry{{handles[0], KindComboBox}, {handles[2], KindComboBox}}, reg.entries)

	assert.Equal(t, lipgloss.Color("#3b82f6"), boxes[0].Colors()["button_color"])
	assert.Equal(t, lipgloss.Color(""), boxes[1].Colors()["button_color"])

	applied, pruned = reg.Flush(dark)
	assert.Equal(t, 2, applied)
	assert.Zero(t, pruned)
}

func TestRegistryPrunesKindMismatch(t *testing.T) {
	t.Parallel()

	table := NewTable()
	reg := NewRegistry(table, nil)
	h := table.Insert(newEntry("x"))
	reg.Register(h, KindComboBox)

	_, pruned := reg.Flush(ForID(Light).Palette)
	assert.Equal(t, 1, pruned)
}

func TestPalettes(t *testing.T) {
	t.Parallel()

	light := ForID(Light)
	dark := ForID(Dark)
	assert.Equal(t, light, ForID("unknown"))

	require.Len(t, Roles(), int(roleCount))
	for _, r := range Roles() {
		assert.NotEmpty(t, light.Palette.Color(r), r.String())
		assert.NotEmpty(t, dark.Palette.Color(r), r.String())
	}
	assert.Equal(t, lipgloss.Color(""), light.Palette.Color(Role(-1)))
	assert.Equal(t, lipgloss.Color("#0f172a"), dark.Palette.Color(RoleBackground))

	seq := light.Charts.Colors(SeriesTop)
	require.Len(t, seq, 5)
	seq[0] = "#000000"
	assert.Equal(t, lipgloss.Color("#f59e0b"), light.Charts.At(SeriesTop, 0), "Colors returns a copy")
	assert.Equal(t, lipgloss.Color("#f59e0b"), light.Charts.At(SeriesTop, 5))
	assert.Equal(t, lipgloss.Color("#78350f"), light.Charts.At(SeriesTop, -1))
}

func TestParseIDAndToggle(t *testing.T) {
	t.Parallel()

	id, ok := ParseID(" Dark ")
	require.True(t, ok)
	assert.Equal(t, Dark, id)
	assert.Equal(t, Light, id.Toggle())
	assert.Equal(t, Dark, Light.Toggle())

	_, ok = ParseID("blue")
	assert.False(t, ok)
}

func TestComboBoxAndTabs(t *testing.T) {
	t.Parallel()

	box := newComboBox([]string{"10", "25", "50"})
	assert.Equal(t, "10", box.Value())
	box.Prev()
	assert.Equal(t, "50", box.Value())
	box.Next()
	assert.Equal(t, "10", box.Value())
	assert.False(t, box.SetValue("7"))
	assert.Equal(t, "", newComboBox(nil).Value())

	tabs := NewTabContainer("Overview", "Products", "Categories", "Trends")
	assert.Equal(t, "Overview", tabs.Active())
	tabs.Cycle(-1)
	assert.Equal(t, "Trends", tabs.Active())
	assert.False(t, tabs.Select("Nope"))
	assert.Equal(t, "Trends", tabs.Active())
	assert.Contains(t, tabs.View(), "Categories")
}
