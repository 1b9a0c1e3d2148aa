package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// Fixture is a seed data set.
type Fixture struct {
	Categories []string         `yaml:"categories" validate:"dive,required"`
	Products   []FixtureProduct `yaml:"products" validate:"dive"`
}

// FixtureProduct references its category by name.
type FixtureProduct struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Price       int64  `yaml:"price" validate:"gte=0"`
	Quantity    int64  `yaml:"quantity" validate:"gte=0"`
	Category    string `yaml:"category" validate:"required"`
}

// DefaultFixture is the sample catalog created on first run.
func DefaultFixture() Fixture {
	return Fixture{
		Categories: []string{"Electronics", "Clothing", "Food", "Books"},
		Products: []FixtureProduct{
			{Name: "Laptop", Description: "High-performance laptop", Price: 999, Quantity: 10, Category: "Electronics"},
			{Name: "T-shirt", Description: "Cotton t-shirt", Price: 20, Quantity: 100, Category: "Clothing"},
			{Name: "Chocolate", Description: "Dark chocolate bar", Price: 5, Quantity: 200, Category: "Food"},
			{Name: "Python Book", Description: "Programming guide", Price: 45, Quantity: 50, Category: "Books"},
		},
	}
}

// LoadFixture reads a YAML fixture from path.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(path, data)
}

// ParseFixture decodes and validates fixture YAML. Unknown keys are rejected.
func ParseFixture(path string, data []byte) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, apperrors.NewParseError(path, 0, err)
	}
	if err := validator.New().Struct(f); err != nil {
		return Fixture{}, apperrors.NewParseError(path, 0, err)
	}

	known := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		known[c] = true
	}
	for i, p := range f.Products {
		if !known[p.Category] {
			return Fixture{}, apperrors.NewParseError(path, productLine(data, i), fmt.Errorf("product %q references unknown category %q", p.Name, p.Category))
		}
	}
	return f, nil
}

// productLine finds the line of the index-th product entry, or 0.
func productLine(data []byte, index int) int {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return 0
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "products" {
			continue
		}
		if items := root.Content[i+1].Content; index < len(items) {
			return items[index].Line
		}
	}
	return 0
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Categories int
	Products   int
}

// Seed inserts missing categories by name, and the fixture's products only when
// the product table is empty. Running it twice inserts nothing the second time.
func (s *Store) Seed(ctx context.Context, f Fixture) (SeedResult, error) {
	var res SeedResult

	ids := make(map[string]int64, len(f.Categories))
	for _, name := range f.Categories {
		c, err := s.CategoryByName(ctx, name)
		if errors.Is(err, ErrNotFound) {
			if c, err = s.CreateCategory(ctx, name); err != nil {
				return res, err
			}
			res.Categories++
		}
		if err != nil {
			return res, err
		}
		ids[name] = c.ID
	}

	var existing int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM product").Scan(&existing); err != nil {
		return res, apperrors.NewStoreError("seed", err)
	}
	if existing > 0 {
		s.log.Debug("catalog already has products, skipping product seed", "products", existing)
		return res, nil
	}

	for _, p := range f.Products {
		_, err := s.CreateProduct(ctx, catalog.Product{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    p.Quantity,
			CategoryID:  ids[p.Category],
		})
		if err != nil {
			return res, err
		}
		res.Products++
	}

	s.log.Info("catalog seeded", "categories", res.Categories, "products", res.Products)
	return res, nil
}
