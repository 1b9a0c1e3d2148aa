package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// KPIs are the headline dashboard figures.
type KPIs struct {
	TotalProducts int
	LowStock      int
	TotalValue    decimal.Decimal
	Categories    int
}

// Point is one labelled value of a chart series.
type Point struct {
	Label string
	Value decimal.Decimal
}

// Measure selects the per-product figure a distribution is taken over.
type Measure int

const (
	MeasurePrice Measure = iota
	MeasureQuantity
	MeasureValue
)

func (m Measure) expr() string {
	switch m {
	case MeasureQuantity:
		return "quantity"
	case MeasureValue:
		return "price * quantity"
	default:
		return "price"
	}
}

// KPIs computes product count, items below lowStock, total inventory value and
// category count.
func (s *Store) KPIs(ctx context.Context, lowStock int) (KPIs, error) {
	var k KPIs
	err := s.db.QueryRowContext(ctx, `SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN quantity < ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(price * quantity), 0)
FROM product`, lowStock).Scan(&k.TotalProducts, &k.LowStock, &k.TotalValue)
	if err != nil {
		return k, apperrors.NewStoreError("kpis", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM category").Scan(&k.Categories); err != nil {
		return k, apperrors.NewStoreError("kpis", err)
	}
	return k, nil
}

// ProductsPerCategory counts products in every category, empty ones included.
func (s *Store) ProductsPerCategory(ctx context.Context) ([]Point, error) {
	return s.points(ctx, "products per category", `SELECT c.name, COUNT(p.id)
FROM category c LEFT JOIN product p ON p.category_id = c.id
GROUP BY c.id, c.name
ORDER BY c.name`)
}

// StockValueByCategory sums price*quantity per category.
func (s *Store) StockValueByCategory(ctx context.Context) ([]Point, error) {
	return s.points(ctx, "stock value by category", `SELECT c.name, COALESCE(SUM(p.price * p.quantity), 0)
FROM category c LEFT JOIN product p ON p.category_id = c.id
GROUP BY c.id, c.name
ORDER BY c.name`)
}

// AveragePriceByCategory averages price over categories that hold products,
// rounded to cents.
func (s *Store) AveragePriceByCategory(ctx context.Context) ([]Point, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT c.name, SUM(p.price), COUNT(p.id)
FROM category c JOIN product p ON p.category_id = c.id
GROUP BY c.id, c.name
ORDER BY c.name`)
	if err != nil {
		return nil, apperrors.NewStoreError("average price by category", err)
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var (
			label string
			sum   decimal.Decimal
			count int64
		)
		if err := rows.Scan(&label, &sum, &count); err != nil {
			return nil, apperrors.NewStoreError("average price by category", err)
		}
		avg := sum.DivRound(decimal.NewFromInt(count), 2)
		out = append(out, Point{Label: label, Value: avg})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("average price by category", err)
	}
	return out, nil
}

// TopProductsByValue returns the limit products with the highest price*quantity.
func (s *Store) TopProductsByValue(ctx context.Context, limit int) ([]Point, error) {
	return s.points(ctx, "top products", `SELECT name, price * quantity AS total_value
FROM product
ORDER BY total_value DESC, id ASC
LIMIT ?`, limit)
}

// LowStockItems lists products with quantity below threshold, lowest first.
func (s *Store) LowStockItems(ctx context.Context, threshold int) ([]Point, error) {
	return s.points(ctx, "low stock items", `SELECT name, quantity
FROM product
WHERE quantity < ?
ORDER BY quantity, id`, threshold)
}

// Distribution returns the raw per-product values of m for histogramming.
func (s *Store) Distribution(ctx context.Context, m Measure) ([]int64, error) {
	op := fmt.Sprintf("distribution of %s", m.expr())
	rows, err := s.db.QueryContext(ctx, "SELECT "+m.expr()+" FROM product ORDER BY id")
	if err != nil {
		return nil, apperrors.NewStoreError(op, err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, apperrors.NewStoreError(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError(op, err)
	}
	return out, nil
}

func (s *Store) points(ctx context.Context, op, query string, args ...any) ([]Point, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError(op, err)
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Label, &p.Value); err != nil {
			return nil, apperrors.NewStoreError(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError(op, err)
	}
	return out, nil
}
