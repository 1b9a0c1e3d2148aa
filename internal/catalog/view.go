package catalog

import (
	"context"
	"fmt"
)

// Page is an immutable snapshot of what the view currently displays.
type Page struct {
	Rows       []Product
	Filter     FilterState
	Page       int
	PageSize   int
	TotalPages int
	TotalItems int
	// CatalogSize is the unfiltered product count. It equals TotalItems when no
	// filter is active.
	CatalogSize int
}

// Showing returns the status line shown under the table.
func (p Page) Showing() string {
	if p.Filter.IsActive() {
		return fmt.Sprintf("Showing %d of %d products", p.TotalItems, p.CatalogSize)
	}
	return fmt.Sprintf("%d products", p.TotalItems)
}

// View executes the query for its FilterState and holds the current page of rows.
// Every transition performs a full requery. A failed requery leaves the view as it
// was before the transition.
type View struct {
	store Store
	state FilterState
	page  Page
}

// NewView creates a view with default filters. Call Refresh to load the first page.
func NewView(store Store, pageSize int) *View {
	state := NewFilterState(pageSize)
	return &View{
		store: store,
		state: state,
		page:  Page{Filter: state, Page: 1, PageSize: state.pageSize, TotalPages: 1},
	}
}

// TotalPages is ceil(total/size), never below one.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

func (v *View) State() FilterState { return v.state }
func (v *View) Snapshot() Page     { return v.page }

// Refresh requeries with the current state.
func (v *View) Refresh(ctx context.Context) error {
	return v.requery(ctx, v.state)
}

// Apply validates and applies advanced criteria. A ValidationError leaves the view
// untouched and no query is run.
func (v *View) Apply(ctx context.Context, c Criteria) error {
	next := v.state
	if err := next.Apply(c); err != nil {
		return err
	}
	return v.requery(ctx, next)
}

// Reset restores the default filters, sort and page size and reloads page 1.
func (v *View) Reset(ctx context.Context) error {
	next := v.state
	next.Reset()
	return v.requery(ctx, next)
}

// SetSearch requeries with term and returns to page 1. Blank terms clear the search.
func (v *View) SetSearch(ctx context.Context, term string) error {
	next := v.state
	next.SetSearch(term)
	return v.requery(ctx, next)
}

// SetPageSize changes the page density and clamps the current page into range.
func (v *View) SetPageSize(ctx context.Context, n int) error {
	next := v.state
	if err := next.SetPageSize(n); err != nil {
		return err
	}
	return v.requery(ctx, next)
}

// ToggleSort sorts by col, flipping the direction when col is already the sort
// column. Unknown columns fail with ErrUnknownSortColumn before any query.
func (v *View) ToggleSort(ctx context.Context, col SortColumn) error {
	if _, err := col.physical(); err != nil {
		return err
	}
	next := v.state
	next.ToggleSort(col)
	return v.requery(ctx, next)
}

// NextPage advances one page; it is a no-op on the last page.
func (v *View) NextPage(ctx context.Context) error {
	if v.state.page >= v.page.TotalPages {
		return nil
	}
	next := v.state
	next.SetPage(next.page + 1)
	return v.requery(ctx, next)
}

// PrevPage goes back one page; it is a no-op on the first page.
func (v *View) PrevPage(ctx context.Context) error {
	if v.state.page <= 1 {
		return nil
	}
	next := v.state
	next.SetPage(next.page - 1)
	return v.requery(ctx, next)
}

// Load replaces the whole state in one requery. The requested page is clamped
// into [1, total pages].
func (v *View) Load(ctx context.Context, state FilterState) error {
	return v.requery(ctx, state)
}

func (v *View) requery(ctx context.Context, next FilterState) error {
	countQuery, err := BuildQuery(next, v.store.Dialect(), false)
	if err != nil {
		return err
	}
	total, err := v.store.Count(ctx, countQuery)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}

	catalogSize := total
	if next.IsActive() {
		all, err := BuildQuery(NewFilterState(next.pageSize), v.store.Dialect(), false)
		if err != nil {
			return err
		}
		if catalogSize, err = v.store.Count(ctx, all); err != nil {
			return fmt.Errorf("count catalog: %w", err)
		}
	}

	totalPages := TotalPages(total, next.pageSize)
	next.SetPage(min(next.page, totalPages))

	pageQuery, err := BuildQuery(next, v.store.Dialect(), true)
	if err != nil {
		return err
	}
	rows, err := v.store.Products(ctx, pageQuery)
	if err != nil {
		return fmt.Errorf("load page %d: %w", next.page, err)
	}

	v.state = next
	v.page = Page{
		Rows:        rows,
		Filter:      next,
		Page:        next.page,
		PageSize:    next.pageSize,
		TotalPages:  totalPages,
		TotalItems:  total,
		CatalogSize: catalogSize,
	}
	return nil
}
