package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// Default filter bounds. A range left at these values is not an active filter.
const (
	DefaultPriceMin float64 = 0
	DefaultPriceMax float64 = 10000
	DefaultStockMin int64   = 0
	DefaultStockMax int64   = 1000
	DefaultPageSize         = 10
)

// PageSizes enumerates the selectable page densities.
var PageSizes = []int{10, 25, 50, 100}

// IsPageSize reports whether n is a selectable page size.
func IsPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// Criteria is the raw advanced-filter input as typed by the user.
type Criteria struct {
	PriceMin   string `filter:"price_min" validate:"required,numeric"`
	PriceMax   string `filter:"price_max" validate:"required,numeric"`
	StockMin   string `filter:"stock_min" validate:"required,numeric"`
	StockMax   string `filter:"stock_max" validate:"required,numeric"`
	Categories []string
}

type bounds struct {
	PriceMin float64 `filter:"price_min" validate:"ltefield=PriceMax"`
	PriceMax float64 `filter:"price_max"`
	StockMin int64   `filter:"stock_min" validate:"ltefield=StockMax"`
	StockMax int64   `filter:"stock_max"`
}

// FilterState is the single source of truth for what the catalog view shows.
// It is only changed through its validated setters.
type FilterState struct {
	searchTerm      string
	priceMin        float64
	priceMax        float64
	stockMin        int64
	stockMax        int64
	categories      []string
	sortColumn      SortColumn
	sortReverse     bool
	page            int
	pageSize        int
	defaultPageSize int
}

// NewFilterState returns a state holding every default. An invalid pageSize falls
// back to DefaultPageSize.
func NewFilterState(pageSize int) FilterState {
	if !IsPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	s := FilterState{defaultPageSize: pageSize}
	s.Reset()
	return s
}

// Reset restores every field to its default.
func (s *FilterState) Reset() {
	if !IsPageSize(s.defaultPageSize) {
		s.defaultPageSize = DefaultPageSize
	}
	*s = FilterState{
		priceMin:        DefaultPriceMin,
		priceMax:        DefaultPriceMax,
		stockMin:        DefaultStockMin,
		stockMax:        DefaultStockMax,
		sortColumn:      SortByID,
		page:            1,
		pageSize:        s.defaultPageSize,
		defaultPageSize: s.defaultPageSize,
	}
}

// Apply validates the criteria and replaces the ranges and category set in one
// step. On error the state is left exactly as it was.
func (s *FilterState) Apply(c Criteria) error {
	v := validatorInstance()
	if err := v.Struct(c); err != nil {
		return convertValidationError(err)
	}

	b, err := parseBounds(c)
	if err != nil {
		return err
	}
	if err := v.Struct(b); err != nil {
		return convertValidationError(err)
	}

	s.priceMin, s.priceMax = b.PriceMin, b.PriceMax
	s.stockMin, s.stockMax = b.StockMin, b.StockMax
	s.categories = normalizeCategories(c.Categories)
	s.page = 1
	return nil
}

func parseBounds(c Criteria) (bounds, error) {
	var b bounds
	var err error
	if b.PriceMin, err = parsePrice("price_min", c.PriceMin); err != nil {
		return b, err
	}
	if b.PriceMax, err = parsePrice("price_max", c.PriceMax); err != nil {
		return b, err
	}
	if b.StockMin, err = parseStock("stock_min", c.StockMin); err != nil {
		return b, err
	}
	if b.StockMax, err = parseStock("stock_max", c.StockMax); err != nil {
		return b, err
	}
	return b, nil
}

func parsePrice(field, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, apperrors.NewValidationError(field, fmt.Sprintf("%q is not a number", raw), err)
	}
	return value, nil
}

func parseStock(field, raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(field, fmt.Sprintf("%q is not a whole number", raw), err)
	}
	return value, nil
}

func normalizeCategories(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// SetSearch replaces the free-text search term and returns to the first page.
func (s *FilterState) SetSearch(term string) {
	s.searchTerm = strings.TrimSpace(term)
	s.page = 1
}

// SetPageSize changes the page density. The page number is left for the view to clamp.
func (s *FilterState) SetPageSize(n int) error {
	if err := validatorInstance().Var(n, "page_size"); err != nil {
		return apperrors.NewValidationError("page_size", fmt.Sprintf("%d is not one of %v", n, PageSizes), err)
	}
	s.pageSize = n
	return nil
}

// ToggleSort flips the direction when col is already the sort column, otherwise
// sorts ascending by col.
func (s *FilterState) ToggleSort(col SortColumn) {
	if col == s.sortColumn {
		s.sortReverse = !s.sortReverse
		return
	}
	s.sortColumn = col
	s.sortReverse = false
}

// SetPage moves to page, never below one. The upper bound is clamped by the view
// once the result size is known.
func (s *FilterState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// Criteria renders the current ranges and categories back into editable input.
func (s FilterState) Criteria() Criteria {
	return Criteria{
		PriceMin:   strconv.FormatFloat(s.priceMin, 'f', -1, 64),
		PriceMax:   strconv.FormatFloat(s.priceMax, 'f', -1, 64),
		StockMin:   strconv.FormatInt(s.stockMin, 10),
		StockMax:   strconv.FormatInt(s.stockMax, 10),
		Categories: slices.Clone(s.categories),
	}
}

// SearchTerm returns the trimmed search text; empty means no search.
func (s FilterState) SearchTerm() string { return s.searchTerm }

// PriceRange returns the inclusive price bounds.
func (s FilterState) PriceRange() (float64, float64) { return s.priceMin, s.priceMax }

// StockRange returns the inclusive quantity bounds.
func (s FilterState) StockRange() (int64, int64) { return s.stockMin, s.stockMax }

// Categories returns a copy of the selected category names.
func (s FilterState) Categories() []string { return slices.Clone(s.categories) }

// SortColumn returns the column rows are ordered by.
func (s FilterState) SortColumn() SortColumn { return s.sortColumn }

// SortReverse reports whether the order is descending.
func (s FilterState) SortReverse() bool { return s.sortReverse }

// Page returns the 1-based page number.
func (s FilterState) Page() int { return s.page }

// PageSize returns the number of rows per page.
func (s FilterState) PageSize() int { return s.pageSize }

func (s FilterState) priceFiltered() bool {
	return s.priceMin != DefaultPriceMin || s.priceMax != DefaultPriceMax
}

func (s FilterState) stockFiltered() bool {
	return s.stockMin != DefaultStockMin || s.stockMax != DefaultStockMax
}

// IsActive reports whether any field that narrows the result set differs from its
// default. Sorting and pagination reorder or slice the same rows and do not count.
func (s FilterState) IsActive() bool {
	return s.searchTerm != "" || s.priceFiltered() || s.stockFiltered() || len(s.categories) > 0
}

// ActiveFilterCount counts the advanced filter groups (price, stock, categories) in use.
func (s FilterState) ActiveFilterCount() int {
	n := 0
	if s.priceFiltered() {
		n++
	}
	if s.stockFiltered() {
		n++
	}
	if len(s.categories) > 0 {
		n++
	}
	return n
}

// Describe lists the applied filters in human-readable form.
func (s FilterState) Describe() []string {
	var parts []string
	if s.searchTerm != "" {
		parts = append(parts, fmt.Sprintf("Search: '%s'", s.searchTerm))
	}
	if s.priceFiltered() {
		parts = append(parts, fmt.Sprintf("Price: $%s - $%s",
			strconv.FormatFloat(s.priceMin, 'f', -1, 64),
			strconv.FormatFloat(s.priceMax, 'f', -1, 64)))
	}
	if s.stockFiltered() {
		parts = append(parts, fmt.Sprintf("Stock: %d - %d", s.stockMin, s.stockMax))
	}
	if len(s.categories) > 0 {
		parts = append(parts, "Categories: "+strings.Join(s.categories, ", "))
	}
	return parts
}
