package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
)

func TestFilterFlagsState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		flags       filterFlags
		wantSort    catalog.SortColumn
		wantReverse bool
		wantPage    int
		wantSize    int
		wantActive  bool
	}{
		{name: "defaults", flags: filterFlags{page: 1}, wantSort: catalog.SortByID, wantPage: 1, wantSize: 25},
		{name: "id ascending", flags: filterFlags{sort: "id"}, wantSort: catalog.SortByID, wantPage: 1, wantSize: 25},
		{name: "id descending", flags: filterFlags{sort: "ID", desc: true}, wantSort: catalog.SortByID, wantReverse: true, wantPage: 1, wantSize: 25},
		{name: "category ascending", flags: filterFlags{sort: "category"}, wantSort: catalog.SortByCategory, wantPage: 1, wantSize: 25},
		{name: "default column descending", flags: filterFlags{desc: true}, wantSort: catalog.SortByID, wantReverse: true, wantPage: 1, wantSize: 25},
		{name: "page and size", flags: filterFlags{page: 3, pageSize: 50}, wantSort: catalog.SortByID, wantPage: 3, wantSize: 50},
		{name: "page below one", flags: filterFlags{page: -2}, wantSort: catalog.SortByID, wantPage: 1, wantSize: 25},
		{name: "search", flags: filterFlags{search: "  lap "}, wantSort: catalog.SortByID, wantPage: 1, wantSize: 25, wantActive: true},
		{name: "stock range", flags: filterFlags{stockMax: "40"}, wantSort: catalog.SortByID, wantPage: 1, wantSize: 25, wantActive: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state, err := tt.flags.state(25)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSort, state.SortColumn())
			assert.Equal(t, tt.wantReverse, state.SortReverse())
			assert.Equal(t, tt.wantPage, state.Page())
			assert.Equal(t, tt.wantSize, state.PageSize())
			assert.Equal(t, tt.wantActive, state.IsActive())
		})
	}
}

func TestFilterFlagsKeepUnsetBoundsAtDefaults(t *testing.T) {
	t.Parallel()

	f := filterFlags{priceMin: "5", categories: []string{"Food", "Books", "Food"}}
	state, err := f.state(10)
	require.NoError(t, err)

	lo, hi := state.PriceRange()
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, catalog.DefaultPriceMax, hi)
	assert.Equal(t, []string{"Books", "Food"}, state.Categories())
	assert.Equal(t, 2, state.ActiveFilterCount())
}

func TestSortColumnList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id, name, description, price, quantity, category", sortColumnList())
	assert.Equal(t, "10, 25, 50, 100", pageSizeList())
}
