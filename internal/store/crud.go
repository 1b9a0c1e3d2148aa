package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// ErrNotFound is wrapped when a referenced product or category does not exist.
var ErrNotFound = errors.New("not found")

// CreateCategory inserts a category. Names are unique.
func (s *Store) CreateCategory(ctx context.Context, name string) (catalog.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Category{}, apperrors.NewValidationError("name", "is required", nil)
	}
	res, err := s.db.ExecContext(ctx, "INSERT INTO category (name) VALUES (?)", name)
	if err != nil {
		return catalog.Category{}, apperrors.NewStoreError("create category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return catalog.Category{}, apperrors.NewStoreError("create category", err)
	}
	return catalog.Category{ID: id, Name: name}, nil
}

// Categories lists every category by name.
func (s *Store) Categories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM category ORDER BY name")
	if err != nil {
		return nil, apperrors.NewStoreError("list categories", err)
	}
	defer rows.Close()

	var out []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, apperrors.NewStoreError("list categories", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list categories", err)
	}
	return out, nil
}

// CategoryNames lists category names in order, for filter pickers.
func (s *Store) CategoryNames(ctx context.Context) ([]string, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names, nil
}

// CategoryByName looks a category up by its unique name.
func (s *Store) CategoryByName(ctx context.Context, name string) (catalog.Category, error) {
	var c catalog.Category
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM category WHERE name = ?", name).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return c, apperrors.NewStoreError("get category", fmt.Errorf("category %q: %w", name, ErrNotFound))
	}
	if err != nil {
		return c, apperrors.NewStoreError("get category", err)
	}
	return c, nil
}

// CreateProduct inserts p and returns it with its ID and category name filled in.
func (s *Store) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if err := validateProduct(p); err != nil {
		return p, err
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO product (name, description, price, quantity, category_id) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.Description, p.Price, p.Quantity, p.CategoryID)
	if err != nil {
		return p, apperrors.NewStoreError("create product", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return p, apperrors.NewStoreError("create product", err)
	}
	return s.Product(ctx, p.ID)
}

// UpdateProduct overwrites every column of the product with p.ID.
func (s *Store) UpdateProduct(ctx context.Context, p catalog.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE product SET name = ?, description = ?, price = ?, quantity = ?, category_id = ? WHERE id = ?",
		p.Name, p.Description, p.Price, p.Quantity, p.CategoryID, p.ID)
	if err != nil {
		return apperrors.NewStoreError("update product", err)
	}
	return expectRow(res, "update product", fmt.Sprintf("product %d", p.ID))
}

// Product fetches a single product joined with its category.
func (s *Store) Product(ctx context.Context, id int64) (catalog.Product, error) {
	var p catalog.Product
	err := s.db.QueryRowContext(ctx,
		"SELECT p.id, p.name, p.description, p.price, p.quantity, p.category_id, c.name FROM product p JOIN category c ON p.category_id = c.id WHERE p.id = ?",
		id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CategoryID, &p.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return p, apperrors.NewStoreError("get product", fmt.Errorf("product %d: %w", id, ErrNotFound))
	}
	if err != nil {
		return p, apperrors.NewStoreError("get product", err)
	}
	return p, nil
}

// DeleteProduct removes one product.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM product WHERE id = ?", id)
	if err != nil {
		return apperrors.NewStoreError("delete product", err)
	}
	return expectRow(res, "delete product", fmt.Sprintf("product %d", id))
}

// DeleteCategory removes a category and every product in it. The two deletes
// autocommit separately; a failure between them leaves the products removed and
// the category in place.
func (s *Store) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM product WHERE category_id = ?", id)
	if err != nil {
		return 0, apperrors.NewStoreError("delete category products", err)
	}
	removed, _ := res.RowsAffected()

	res, err = s.db.ExecContext(ctx, "DELETE FROM category WHERE id = ?", id)
	if err != nil {
		return removed, apperrors.NewStoreError("delete category", err)
	}
	s.log.Info("category deleted", "category_id", id, "products_removed", removed)
	return removed, expectRow(res, "delete category", fmt.Sprintf("category %d", id))
}

func expectRow(res sql.Result, op, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError(op, err)
	}
	if n == 0 {
		return apperrors.NewStoreError(op, fmt.Errorf("%s: %w", what, ErrNotFound))
	}
	return nil
}

func validateProduct(p catalog.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperrors.NewValidationError("name", "is required", nil)
	case p.Price < 0:
		return apperrors.NewValidationError("price", "must not be negative", nil)
	case p.Quantity < 0:
		return apperrors.NewValidationError("quantity", "must not be negative", nil)
	}
	return nil
}
