package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryDefaultsHasOnlyRanges(t *testing.T) {
	t.Parallel()

	q, err := BuildQuery(NewFilterState(10), SQLite, false)
	require.NoError(t, err)

	require.Len(t, q.Predicates, 2)
	assert.Equal(t, "p.price >= ? AND p.price <= ?", q.Predicates[0].SQL)
	assert.Equal(t, "p.quantity >= ? AND p.quantity <= ?", q.Predicates[1].SQL)
	assert.Equal(t, []string{"p.id"}, q.OrderBy)
	assert.False(t, q.Paginated)
	assert.Equal(t, []any{DefaultPriceMin, DefaultPriceMax, DefaultStockMin, DefaultStockMax}, q.Args())
	assert.NotContains(t, q.SQL(), "LIMIT")
}

func TestBuildQueryPredicateOrder(t *testing.T) {
	t.Parallel()

	s := NewFilterState(25)
	s.SetSearch("50%")
	require.NoError(t, s.Apply(Criteria{PriceMin: "1", PriceMax: "99", StockMin: "2", StockMax: "20", Categories: []string{"Food", "Books"}}))
	s.ToggleSort(SortByPrice)
	s.ToggleSort(SortByPrice)
	s.SetPage(3)

	q, err := BuildQuery(s, MySQL, true)
	require.NoError(t, err)

	require.Len(t, q.Predicates, 4)
	assert.Contains(t, q.Predicates[0].SQL, "LOWER(CAST(p.price AS CHAR)) LIKE ? ESCAPE '!'")
	assert.Contains(t, q.Predicates[0].SQL, "LOWER(c.name) LIKE ?")
	assert.Equal(t, "c.name IN (?, ?)", q.Predicates[3].SQL)
	assert.Equal(t, []string{"p.price DESC", "p.id ASC"}, q.OrderBy)

	args := q.Args()
	require.Len(t, args, 5+2+2+2+2)
	for _, a := range args[:5] {
		assert.Equal(t, "%50!%%", a)
	}
	assert.Equal(t, []any{1.0, 99.0, int64(2), int64(20), "Books", "Food", 25, 50}, args[5:])

	assert.Equal(t,
		"SELECT p.id, p.name, p.description, p.price, p.quantity, p.category_id, c.name FROM product p JOIN category c ON p.category_id = c.id"+
			" WHERE "+q.Predicates[0].SQL+" AND p.price >= ? AND p.price <= ? AND p.quantity >= ? AND p.quantity <= ? AND c.name IN (?, ?)"+
			" ORDER BY p.price DESC, p.id ASC LIMIT ? OFFSET ?",
		q.SQL())
	assert.Equal(t, args[:len(args)-2], q.CountArgs())
	assert.NotContains(t, q.CountSQL(), "ORDER BY")
}

func TestBuildQueryIsDeterministic(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	s.SetSearch("Lap")
	require.NoError(t, s.Apply(Criteria{PriceMin: "0", PriceMax: "500", StockMin: "0", StockMax: "10", Categories: []string{"b", "a", "c"}}))

	first, err := BuildQuery(s, SQLite, true)
	require.NoError(t, err)
	second, err := BuildQuery(s, SQLite, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.SQL(), second.SQL())
}

func TestBuildQuerySearchIsCaseFolded(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	s.SetSearch("T-SHIRT")

	q, err := BuildQuery(s, SQLite, false)
	require.NoError(t, err)
	assert.Equal(t, "%t-shirt%", q.Predicates[0].Args[0])
	assert.Contains(t, q.Predicates[0].SQL, "fold(CAST(p.quantity AS TEXT)) LIKE ?")
	assert.Contains(t, q.Predicates[0].SQL, "fold(c.name) LIKE ?")
	assert.NotContains(t, q.Predicates[0].SQL, "LOWER(")
}

func TestFoldCaseHandlesNonASCII(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "écran", FoldCase("ÉCRAN"))
	assert.Equal(t, "électronique", FoldCase("Électronique"))
	assert.Equal(t, "fold(p.name)", SQLite.Lower("p.name"))
	assert.Equal(t, "LOWER(p.name)", MySQL.Lower("p.name"))
}

func TestBuildQuerySortByIDHasNoTieBreak(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	s.ToggleSort(SortByID)

	q, err := BuildQuery(s, SQLite, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"p.id DESC"}, q.OrderBy)
}

func TestBuildQueryUnknownSortColumn(t *testing.T) {
	t.Parallel()

	s := NewFilterState(10)
	s.sortColumn = SortColumn(42)

	_, err := BuildQuery(s, SQLite, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSortColumn))
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a!%b!_c!!d", escapeLike("a%b_c!d"))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestParseSortColumn(t *testing.T) {
	t.Parallel()

	col, ok := ParseSortColumn(" price ")
	require.True(t, ok)
	assert.Equal(t, SortByPrice, col)

	_, ok = ParseSortColumn("weight")
	assert.False(t, ok)
	assert.Equal(t, "Category", SortByCategory.String())
	assert.Equal(t, "SortColumn(9)", SortColumn(9).String())
}
