package dashboard

import (
	"context"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	"github.com/alexisbeaulieu97/stockroom/internal/charts"
	"github.com/alexisbeaulieu97/stockroom/internal/export"
	"github.com/alexisbeaulieu97/stockroom/internal/store"
)

// Analytics exposes the read-only queries behind the KPI cards, the charts and
// the category picker.
type Analytics interface {
	charts.Source
	KPIs(ctx context.Context, lowStock int) (store.KPIs, error)
	CategoryNames(ctx context.Context) ([]string, error)
}

// Exporter writes the rows matching a filter state to disk.
type Exporter interface {
	Export(ctx context.Context, state catalog.FilterState) (export.Result, error)
}
