package charts

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stockroom/internal/store"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()

	ctx := context.Background()
	s, err := store.Open(ctx, store.Options{Driver: store.DriverSQLite, DSN: filepath.Join(t.TempDir(), "catalog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	_, err = s.Seed(ctx, store.DefaultFixture())
	require.NoError(t, err)
	return s
}

func TestHistogram(t *testing.T) {
	t.Parallel()

	d := Histogram("Price", []int64{999, 20, 5, 45}, 8, "$")
	require.Len(t, d.Values, 4, "bins are capped by distinct values")
	assert.Equal(t, []float64{3, 0, 0, 1}, d.Values)
	assert.Equal(t, "$5-$254", d.Labels[0])
	assert.Equal(t, theme.SeriesHistogram, d.Series)

	d = Histogram("Quantity", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 10, "")
	require.Len(t, d.Values, 10)
	var total float64
	for _, v := range d.Values {
		total += v
	}
	assert.Equal(t, 12.0, total)
	assert.Equal(t, 2.0, d.Values[9], "max falls in the last bin")

	d = Histogram("Same", []int64{7, 7, 7}, 8, "")
	assert.Equal(t, []float64{3}, d.Values)

	d = Histogram("None", nil, 8, "")
	assert.Empty(t, d.Values)
}

func TestForTabBuildsEveryTab(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := seededStore(t)

	want := map[string][]string{
		TabOverview:   {"Product Distribution", "Stock Value by Category"},
		TabProducts:   {"Price Distribution", "Top Products by Value", "Quantity Distribution"},
		TabCategories: {"Products per Category", "Average Price by Category"},
		TabTrends:     {"Low Stock Items", "Inventory Value Distribution"},
	}
	for _, tab := range Tabs {
		ds, err := ForTab(ctx, s, tab, DefaultSettings())
		require.NoError(t, err, tab)
		titles := make([]string, len(ds))
		for i, d := range ds {
			titles[i] = d.Title
		}
		assert.Equal(t, want[tab], titles, tab)
	}

	ds, err := ForTab(ctx, s, TabProducts, DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptop", "Python Book", "T-shirt", "Chocolate"}, ds[1].Labels)
	assert.Equal(t, []float64{9990, 2250, 2000, 1000}, ds[1].Values)

	ds, err = ForTab(ctx, s, TabTrends, DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, ds[0].Values, "sample catalog has nothing below ten units")

	ds, err = ForTab(ctx, s, "Nope", DefaultSettings())
	require.NoError(t, err)
	assert.Nil(t, ds)
}

type brokenSource struct{ *store.Store }

func (brokenSource) StockValueByCategory(context.Context) ([]store.Point, error) {
	return nil, errors.New("query failed")
}

func TestForTabPropagatesErrors(t *testing.T) {
	t.Parallel()

	_, err := ForTab(context.Background(), brokenSource{seededStore(t)}, TabOverview, DefaultSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stock Value by Category")
}

func TestBoardReleasesFigures(t *testing.T) {
	t.Parallel()

	b := NewBoard(nil)
	ds := []Dataset{
		{Title: "Counts", Labels: []string{"a", "b"}, Values: []float64{1, 2}, Series: theme.SeriesCategory},
		{Title: "Empty", Empty: "nothing here"},
	}

	for range 20 {
		for _, id := range []theme.ID{theme.Light, theme.Dark} {
			out := b.RenderAll(ds, theme.ForID(id), 60)
			assert.Contains(t, out, "Counts")
			assert.Contains(t, out, "nothing here")
		}
	}
	assert.Zero(t, b.Open())

	fig := b.Acquire(40)
	assert.Equal(t, 1, b.Open())
	fig.Release()
	fig.Release()
	assert.Zero(t, b.Open())
}

func TestRenderScalesBars(t *testing.T) {
	t.Parallel()

	b := NewBoard(nil)
	light := theme.ForID(theme.Light)
	out := b.Render(Dataset{Title: "T", Labels: []string{"small", "big"}, Values: []float64{1, 4}, Prefix: "$"}, light.Charts, light.Palette, 60)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Less(t, strings.Count(lines[1], "█"), strings.Count(lines[2], "█"))
	assert.Contains(t, lines[2], "$4")
	assert.Equal(t, "$27.50", formatValue("$", 27.5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
