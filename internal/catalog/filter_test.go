package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

func defaultCriteria() Criteria {
	return Criteria{PriceMin: "0", PriceMax: "10000", StockMin: "0", StockMax: "1000"}
}

func TestNewFilterStateDefaults(t *testing.T) {
	t.Parallel()

	s := NewFilterState(25)
	assert.Equal(t, "", s.SearchTerm())
	minP, maxP := s.PriceRange()
	assert.Equal(t, DefaultPriceMin, minP)
	assert.Equal(t, DefaultPriceMax, maxP)
	minS, maxS := s.StockRange()
	assert.Equal(t, DefaultStockMin, minS)
	assert.Equal(t, DefaultStockMax, maxS)
	assert.Empty(t, s.Categories())
	assert.Equal(t, SortByID, s.SortColumn())
	assert.False(t, s.SortReverse())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 25, s.PageSize())
	assert.False(t, s.IsActive())
}

func TestNewFilterStateFallsBackOnInvalidPageSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPageSize, NewFilterState(7).PageSize())
}

func TestApplyValidCriteria(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	s.SetPage(3)
	err := s.Apply(Criteria{
		PriceMin:   "5",
		PriceMax:   " 50.5 ",
		StockMin:   "1",
		StockMax:   "200",
		Categories: []string{"Food", "Books", "Food", " "},
	})
	require.NoError(t, err)

	minP, maxP := s.PriceRange()
	assert.Equal(t, 5.0, minP)
	assert.Equal(t, 50.5, maxP)
	minS, maxS := s.StockRange()
	assert.EqualValues(t, 1, minS)
	assert.EqualValues(t, 200, maxS)
	assert.Equal(t, []string{"Books", "Food"}, s.Categories())
	assert.Equal(t, 1, s.Page())
	assert.True(t, s.IsActive())
	assert.Equal(t, 3, s.ActiveFilterCount())
}

func TestApplyRejectsInvalidCriteriaWithoutMutation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		criteria Criteria
		field    string
	}{
		{name: "non numeric price", criteria: Criteria{PriceMin: "cheap", PriceMax: "10", StockMin: "0", StockMax: "1"}, field: "price_min"},
		{name: "missing stock", criteria: Criteria{PriceMin: "0", PriceMax: "10", StockMin: "", StockMax: "1"}, field: "stock_min"},
		{name: "inverted price", criteria: Criteria{PriceMin: "100", PriceMax: "10", StockMin: "0", StockMax: "1"}, field: "price_min"},
		{name: "inverted stock", criteria: Criteria{PriceMin: "0", PriceMax: "10", StockMin: "9", StockMax: "1"}, field: "stock_min"},
		{name: "fractional stock", criteria: Criteria{PriceMin: "0", PriceMax: "10", StockMin: "1.5", StockMax: "3"}, field: "stock_min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewFilterState(10)
			require.NoError(t, s.Apply(Criteria{PriceMin: "1", PriceMax: "2", StockMin: "3", StockMax: "4", Categories: []string{"Food"}}))
			s.SetSearch("choc")
			before := s

			err := s.Apply(tt.criteria)
			require.Error(t, err)

			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, before, s)
		})
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	t.Parallel()

	s := NewFilterState(50)
	require.NoError(t, s.Apply(Criteria{PriceMin: "1", PriceMax: "2", StockMin: "3", StockMax: "4", Categories: []string{"Food"}}))
	s.SetSearch("x")
	s.ToggleSort(SortByPrice)
	require.NoError(t, s.SetPageSize(100))
	s.SetPage(4)

	s.Reset()
	assert.Equal(t, NewFilterState(50), s)
	assert.False(t, s.IsActive())
}

func TestIsActiveIgnoresSortAndPaging(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	s.ToggleSort(SortByName)
	s.SetPage(2)
	require.NoError(t, s.SetPageSize(25))
	assert.False(t, s.IsActive())

	s.SetSearch("  ")
	assert.False(t, s.IsActive())

	s.SetSearch("lap")
	assert.True(t, s.IsActive())
	assert.Equal(t, 0, s.ActiveFilterCount())
}

func TestSetPageSizeRejectsUnknownSize(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	err := s.SetPageSize(20)
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "page_size", verr.Field)
	assert.Equal(t, 10, s.PageSize())
}

func TestToggleSortCycle(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	steps := []struct {
		col     SortColumn
		reverse bool
	}{
		{SortByPrice, false},
		{SortByPrice, true},
		{SortByPrice, false},
		{SortByName, false},
		{SortByName, true},
		{SortByQuantity, false},
	}
	for _, step := range steps {
		s.ToggleSort(step.col)
		assert.Equal(t, step.col, s.SortColumn())
		assert.Equal(t, step.reverse, s.SortReverse())
	}
}

func TestCriteriaRoundTripsThroughApply(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	require.NoError(t, s.Apply(Criteria{PriceMin: "2.5", PriceMax: "40", StockMin: "0", StockMax: "90", Categories: []string{"Books"}}))

	other := NewFilterState(10)
	require.NoError(t, other.Apply(s.Criteria()))
	assert.Equal(t, s, other)
	assert.Equal(t, defaultCriteria(), NewFilterState(10).Criteria())
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	assert.Empty(t, s.Describe())

	s.SetSearch("shirt")
	require.NoError(t, s.Apply(Criteria{PriceMin: "0", PriceMax: "50", StockMin: "0", StockMax: "1000", Categories: []string{"Food", "Clothing"}}))
	assert.Equal(t, []string{
		"Search: 'shirt'",
		"Price: $0 - $50",
		"Categories: Clothing, Food",
	}, s.Describe())
}
