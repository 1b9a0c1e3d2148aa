package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// filterFlags mirror the dashboard's search box, filter dialog and sort controls.
type filterFlags struct {
	search     string
	priceMin   string
	priceMax   string
	stockMin   string
	stockMax   string
	categories []string
	sort       string
	desc       bool
	page       int
	pageSize   int
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags, paging bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.search, "search", "s", "", "Case-insensitive text matched against every column")
	flags.StringVar(&f.priceMin, "price-min", "", "Lowest price to include")
	flags.StringVar(&f.priceMax, "price-max", "", "Highest price to include")
	flags.StringVar(&f.stockMin, "stock-min", "", "Lowest quantity to include")
	flags.StringVar(&f.stockMax, "stock-max", "", "Highest quantity to include")
	flags.StringSliceVar(&f.categories, "category", nil, "Category to include (repeatable)")
	flags.StringVar(&f.sort, "sort", "", "Sort column: "+sortColumnList())
	flags.BoolVar(&f.desc, "desc", false, "Sort in descending order")
	if paging {
		flags.IntVar(&f.page, "page", 1, "Page to show")
		flags.IntVar(&f.pageSize, "page-size", 0, "Rows per page: 10, 25, 50 or 100 (default from configuration)")
	}
}

// state builds the FilterState the flags describe. Range flags go through the
// same validation as the filter dialog; unset ranges keep their defaults.
func (f *filterFlags) state(defaultPageSize int) (catalog.FilterState, error) {
	pageSize := defaultPageSize
	if f.pageSize != 0 {
		pageSize = f.pageSize
	}
	s := catalog.NewFilterState(pageSize)
	if err := s.SetPageSize(pageSize); err != nil {
		return s, err
	}

	c := s.Criteria()
	for _, field := range []struct {
		flag string
		dst  *string
	}{
		{f.priceMin, &c.PriceMin},
		{f.priceMax, &c.PriceMax},
		{f.stockMin, &c.StockMin},
		{f.stockMax, &c.StockMax},
	} {
		if v := strings.TrimSpace(field.flag); v != "" {
			*field.dst = v
		}
	}
	c.Categories = f.categories
	if err := s.Apply(c); err != nil {
		return s, err
	}
	s.SetSearch(f.search)

	if f.sort != "" {
		col, ok := catalog.ParseSortColumn(f.sort)
		if !ok {
			return s, apperrors.NewValidationError("sort", fmt.Sprintf("must be one of %s", sortColumnList()), nil)
		}
		s.ToggleSort(col)
		if col == catalog.SortByID {
			// ID is already the sort column, so the toggle above reversed it
			s.ToggleSort(col)
		}
	}
	if f.desc {
		s.ToggleSort(s.SortColumn())
	}

	s.SetPage(f.page)
	return s, nil
}

func sortColumnList() string {
	names := make([]string, 0, len(catalog.SortColumns()))
	for _, col := range catalog.SortColumns() {
		names = append(names, strings.ToLower(col.String()))
	}
	return strings.Join(names, ", ")
}

func filterSuggestion() string {
	return "Ranges must be numbers with min <= max; page size must be one of " + pageSizeList() + "."
}

func pageSizeList() string {
	parts := make([]string, len(catalog.PageSizes))
	for i, n := range catalog.PageSizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
