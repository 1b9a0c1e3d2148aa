// Package export writes the currently filtered catalog to CSV.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	"github.com/alexisbeaulieu97/stockroom/internal/logger"
)

const maxCollisionSuffix = 1000

// Options configures a Service.
type Options struct {
	Dir    string
	Now    func() time.Time
	Logger *logger.Logger
}

// Service exports every row matching a FilterState, ignoring pagination.
type Service struct {
	store catalog.Store
	dir   string
	now   func() time.Time
	log   *logger.Logger
}

// Result describes a finished export.
type Result struct {
	Path     string
	Rows     int
	Filtered bool
	// Summary lists the applied filters, or "All data exported".
	Summary []string
}

// New creates an export service writing into opts.Dir.
func New(store catalog.Store, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return &Service{store: store, dir: dir, now: now, log: opts.Logger.With("export_dir", dir)}
}

// FileName encodes whether filters were active and the export time.
func FileName(filtered bool, at time.Time) string {
	prefix := "products"
	if filtered {
		prefix += "_filtered"
	}
	return prefix + "_" + at.Format("20060102_150405") + ".csv"
}

// Export runs the unpaginated query for state and writes it as CSV. A file that
// fails mid-write is removed.
func (s *Service) Export(ctx context.Context, state catalog.FilterState) (Result, error) {
	q, err := catalog.BuildQuery(state, s.store.Dialect(), false)
	if err != nil {
		return Result{}, err
	}
	rows, err := s.store.Products(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("export query: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create export dir: %w", err)
	}

	filtered := state.IsActive()
	f, path, err := createUnique(s.dir, FileName(filtered, s.now()))
	if err != nil {
		return Result{}, err
	}

	if err := Write(f, rows); err != nil {
		f.Close()
		_ = os.Remove(path)
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return Result{}, fmt.Errorf("close %s: %w", path, err)
	}

	summary := state.Describe()
	if len(summary) == 0 {
		summary = []string{"All data exported"}
	}

	s.log.Info("catalog exported", "path", path, "rows", len(rows), "filtered", filtered)
	return Result{Path: path, Rows: len(rows), Filtered: filtered, Summary: summary}, nil
}

// createUnique opens name exclusively, appending _1, _2, ... before the extension
// when a file from the same second already exists.
func createUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < maxCollisionSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = stem + "_" + strconv.Itoa(i) + ext
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create export file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("create export file: too many exports named %s", name)
}

// Write serialises rows with the fixed header.
func Write(w io.Writer, rows []catalog.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(catalog.ExportColumns); err != nil {
		return err
	}
	for _, p := range rows {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Description,
			strconv.FormatInt(p.Price, 10),
			strconv.FormatInt(p.Quantity, 10),
			p.Category,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
