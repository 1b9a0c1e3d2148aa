package store

import (
	"context"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS category (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS product (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    price INTEGER NOT NULL CHECK (price >= 0),
    quantity INTEGER NOT NULL CHECK (quantity >= 0),
    category_id INTEGER NOT NULL,
    FOREIGN KEY (category_id) REFERENCES category(id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_product_category ON product(category_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS category (
    id INT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS product (
    id INT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    description TEXT NOT NULL,
    price INT NOT NULL CHECK (price >= 0),
    quantity INT NOT NULL CHECK (quantity >= 0),
    category_id INT NOT NULL,
    FOREIGN KEY (category_id) REFERENCES category(id),
    INDEX idx_product_category (category_id)
)`,
}

// EnsureSchema creates the category and product tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ddl := sqliteSchema
	if s.dialect == catalog.MySQL {
		ddl = mysqlSchema
	}
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return apperrors.NewStoreError("create schema", err)
		}
	}
	return nil
}
