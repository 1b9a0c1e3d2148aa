// Package charts turns catalog analytics into chart datasets and renders them as
// terminal bar charts. Rendering receives only a palette and the data.
package charts

import (
	"context"
	"fmt"
	"slices"

	"github.com/alexisbeaulieu97/stockroom/internal/store"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

// Dashboard tab names, in display order.
const (
	TabOverview   = "Overview"
	TabProducts   = "Products"
	TabCategories = "Categories"
	TabTrends     = "Trends"
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []string{TabOverview, TabProducts, TabCategories, TabTrends}

// IsTab reports whether name is a dashboard tab.
func IsTab(name string) bool { return slices.Contains(Tabs, name) }

// Dataset is the data one chart consumes.
type Dataset struct {
	Title  string
	Labels []string
	Values []float64
	Series theme.Series
	// Prefix is prepended to printed values, such as "$".
	Prefix string
	// Empty is shown instead of bars when there are no values.
	Empty string
}

// Source supplies the analytics queries the charts are built from.
type Source interface {
	ProductsPerCategory(ctx context.Context) ([]store.Point, error)
	StockValueByCategory(ctx context.Context) ([]store.Point, error)
	AveragePriceByCategory(ctx context.Context) ([]store.Point, error)
	TopProductsByValue(ctx context.Context, limit int) ([]store.Point, error)
	LowStockItems(ctx context.Context, threshold int) ([]store.Point, error)
	Distribution(ctx context.Context, m store.Measure) ([]int64, error)
}

// Settings tune dataset construction.
type Settings struct {
	LowStockThreshold int
	TopProducts       int
}

// DefaultSettings match the dashboard defaults.
func DefaultSettings() Settings {
	return Settings{LowStockThreshold: 10, TopProducts: 5}
}

// ForTab builds the datasets shown on tab. Unknown tabs have no charts.
func ForTab(ctx context.Context, src Source, tab string, s Settings) ([]Dataset, error) {
	switch tab {
	case TabOverview:
		return collect(
			pointSet(ctx, "Product Distribution", theme.SeriesCategory, "", "No categories", src.ProductsPerCategory),
			pointSet(ctx, "Stock Value by Category", theme.SeriesBar, "$", "No categories", src.StockValueByCategory),
		)
	case TabProducts:
		return collect(
			histogramSet(ctx, src, "Price Distribution", store.MeasurePrice, 8, "$"),
			pointSet(ctx, "Top Products by Value", theme.SeriesTop, "$", "No products", func(ctx context.Context) ([]store.Point, error) {
				return src.TopProductsByValue(ctx, s.TopProducts)
			}),
			histogramSet(ctx, src, "Quantity Distribution", store.MeasureQuantity, 10, ""),
		)
	case TabCategories:
		return collect(
			pointSet(ctx, "Products per Category", theme.SeriesCategory, "", "No categories", src.ProductsPerCategory),
			pointSet(ctx, "Average Price by Category", theme.SeriesBar, "$", "No products", src.AveragePriceByCategory),
		)
	case TabTrends:
		return collect(
			pointSet(ctx, "Low Stock Items", theme.SeriesTop, "", "No products with low stock", func(ctx context.Context) ([]store.Point, error) {
				return src.LowStockItems(ctx, s.LowStockThreshold)
			}),
			histogramSet(ctx, src, "Inventory Value Distribution", store.MeasureValue, 8, "$"),
		)
	default:
		return nil, nil
	}
}

type result struct {
	dataset Dataset
	err     error
}

func collect(results ...result) ([]Dataset, error) {
	out := make([]Dataset, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, r.dataset)
	}
	return out, nil
}

func pointSet(ctx context.Context, title string, series theme.Series, prefix, empty string, fetch func(context.Context) ([]store.Point, error)) result {
	points, err := fetch(ctx)
	if err != nil {
		return result{err: fmt.Errorf("%s: %w", title, err)}
	}
	d := Dataset{Title: title, Series: series, Prefix: prefix, Empty: empty}
	for _, p := range points {
		d.Labels = append(d.Labels, p.Label)
		d.Values = append(d.Values, p.Value.InexactFloat64())
	}
	return result{dataset: d}
}

func histogramSet(ctx context.Context, src Source, title string, m store.Measure, maxBins int, prefix string) result {
	values, err := src.Distribution(ctx, m)
	if err != nil {
		return result{err: fmt.Errorf("%s: %w", title, err)}
	}
	return result{dataset: Histogram(title, values, maxBins, prefix)}
}

// Histogram bins values into min(maxBins, distinct values) equal-width bins
// spanning [min, max]. The last bin includes max.
func Histogram(title string, values []int64, maxBins int, prefix string) Dataset {
	d := Dataset{Title: title, Series: theme.SeriesHistogram, Empty: "No products"}
	if len(values) == 0 || maxBins <= 0 {
		return d
	}

	distinct := map[int64]struct{}{}
	lo, hi := values[0], values[0]
	for _, v := range values {
		distinct[v] = struct{}{}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	bins := min(maxBins, len(distinct))

	start, end := float64(lo), float64(hi)
	if lo == hi {
		start, end = start-0.5, end+0.5
	}
	width := (end - start) / float64(bins)

	counts := make([]float64, bins)
	for _, v := range values {
		idx := int((float64(v) - start) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	for i := range bins {
		from := start + float64(i)*width
		to := from + width
		d.Labels = append(d.Labels, fmt.Sprintf("%s%.0f-%s%.0f", prefix, from, prefix, to))
	}
	d.Values = counts
	return d
}
