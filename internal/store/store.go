// Package store implements the catalog store over database/sql. SQLite
// (modernc.org/sqlite) is the default engine; MySQL is supported for existing
// inventory databases.
//
// All calls are synchronous and share one connection. Every write autocommits;
// no transaction spans multiple logical operations.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	"github.com/alexisbeaulieu97/stockroom/internal/logger"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

func init() {
	// search predicates compare fold(col) on SQLite; see catalog.Dialect.Lower
	sqlite.MustRegisterDeterministicScalarFunction(catalog.FoldFunc, 1, foldText)
}

func foldText(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return catalog.FoldCase(v), nil
	case []byte:
		return catalog.FoldCase(string(v)), nil
	default:
		return catalog.FoldCase(fmt.Sprint(v)), nil
	}
}

// Options configures Open.
type Options struct {
	Driver string
	DSN    string
	Logger *logger.Logger
}

// Store is the catalog store. It satisfies catalog.Store.
type Store struct {
	db      *sql.DB
	dialect catalog.Dialect
	log     *logger.Logger
}

var _ catalog.Store = (*Store)(nil)

// Open connects to the database and creates the schema when missing.
func Open(ctx context.Context, opts Options) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if driver == "" {
		driver = DriverSQLite
	}

	var (
		dsn     string
		dialect catalog.Dialect
		err     error
	)
	switch driver {
	case DriverSQLite:
		dsn, err = sqliteDSN(opts.DSN)
		dialect = catalog.SQLite
	case DriverMySQL:
		dsn, err = mysqlDSN(opts.DSN)
		dialect = catalog.MySQL
	default:
		err = fmt.Errorf("unsupported driver %q", opts.Driver)
	}
	if err != nil {
		return nil, apperrors.NewStoreError("open", err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, apperrors.NewStoreError("open", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dialect: dialect, log: opts.Logger.With("driver", driver)}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.NewStoreError("connect", err)
	}
	if dialect == catalog.SQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, apperrors.NewStoreError("connect", err)
		}
	}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s.log.Debug("catalog store opened")
	return s, nil
}

func sqliteDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", fmt.Errorf("sqlite database path is empty")
	}
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return dsn, nil
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		return "", err
	}
	return dsn, nil
}

func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(strings.TrimSpace(dsn))
	if err != nil {
		return "", err
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("mysql dsn has no database name")
	}
	// report matched rather than changed rows so no-op updates are not "not found"
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// Close releases the connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Dialect reports the SQL flavour for query building.
func (s *Store) Dialect() catalog.Dialect { return s.dialect }

// Count runs q.CountSQL.
func (s *Store) Count(ctx context.Context, q catalog.Query) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, q.CountSQL(), q.CountArgs()...).Scan(&n); err != nil {
		return 0, apperrors.NewStoreError("count products", err)
	}
	return n, nil
}

// Products runs q.SQL and returns rows in query order. An empty result is not an error.
func (s *Store) Products(ctx context.Context, q catalog.Query) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return nil, apperrors.NewStoreError("query products", err)
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CategoryID, &p.Category); err != nil {
			return nil, apperrors.NewStoreError("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("query products", err)
	}
	return products, nil
}
