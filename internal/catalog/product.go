// Package catalog holds the catalog query and presentation state engine: the
// filter state the user edits, the deterministic query built from it, and the
// paginated view that executes that query against a Store.
package catalog

import "context"

// Product is a catalog row joined with its category name.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Quantity    int64
	CategoryID  int64
	Category    string
}

// Category groups products. Names are unique.
type Category struct {
	ID   int64
	Name string
}

// Store executes queries produced by BuildQuery. Implementations block until the
// query returns; there is no cancellation beyond the context deadline.
type Store interface {
	Dialect() Dialect
	Count(ctx context.Context, q Query) (int, error)
	Products(ctx context.Context, q Query) ([]Product, error)
}

// ExportColumns is the fixed column order for tabular output.
var ExportColumns = []string{"ID", "Name", "Description", "Price", "Quantity", "Category"}
