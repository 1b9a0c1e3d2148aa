package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dialect selects the SQL flavour of the backing store.
type Dialect int

const (
	SQLite Dialect = iota
	MySQL
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case MySQL:
		return "mysql"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// CastText renders expr converted to a character type.
func (d Dialect) CastText(expr string) string {
	if d == MySQL {
		return "CAST(" + expr + " AS CHAR)"
	}
	return "CAST(" + expr + " AS TEXT)"
}

// FoldFunc is the SQLite scalar function the store registers to lower-case
// text with FoldCase. SQLite's own LOWER only handles ASCII.
const FoldFunc = "fold"

// FoldCase lower-cases s with Unicode rules. Search terms and, on SQLite,
// searched columns both go through it.
func FoldCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Lower renders expr lower-cased for a case-insensitive comparison.
func (d Dialect) Lower(expr string) string {
	if d == MySQL {
		return "LOWER(" + expr + ")"
	}
	return FoldFunc + "(" + expr + ")"
}

const (
	selectProducts = "SELECT p.id, p.name, p.description, p.price, p.quantity, p.category_id, c.name FROM product p JOIN category c ON p.category_id = c.id"
	countProducts  = "SELECT COUNT(*) FROM product p JOIN category c ON p.category_id = c.id"
	likeEscape     = '!'
)

// Predicate is one condition of the WHERE clause with its bound parameters.
type Predicate struct {
	SQL  string
	Args []any
}

// Query is the fully ordered statement derived from a FilterState. The same
// predicate chain drives counting, the paginated view, and export.
type Query struct {
	Predicates []Predicate
	OrderBy    []string
	Paginated  bool
	Limit      int
	Offset     int
}

func (q Query) where() string {
	if len(q.Predicates) == 0 {
		return ""
	}
	parts := make([]string, len(q.Predicates))
	for i, p := range q.Predicates {
		parts[i] = p.SQL
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

// SQL renders the row query including ordering and, when paginated, LIMIT/OFFSET.
func (q Query) SQL() string {
	var b strings.Builder
	b.WriteString(selectProducts)
	b.WriteString(q.where())
	if len(q.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.OrderBy, ", "))
	}
	if q.Paginated {
		b.WriteString(" LIMIT ? OFFSET ?")
	}
	return b.String()
}

// Args returns the parameters for SQL in placeholder order.
func (q Query) Args() []any {
	args := q.CountArgs()
	if q.Paginated {
		args = append(args, q.Limit, q.Offset)
	}
	return args
}

// CountSQL renders a COUNT(*) over the same predicates, ignoring order and paging.
func (q Query) CountSQL() string {
	return countProducts + q.where()
}

// CountArgs returns the parameters for CountSQL.
func (q Query) CountArgs() []any {
	var args []any
	for _, p := range q.Predicates {
		args = append(args, p.Args...)
	}
	return args
}

// BuildQuery turns a FilterState into a Query. The predicate order is fixed:
// text search, price range, stock range, category membership, then ordering and
// optional pagination. The result depends only on its inputs.
func BuildQuery(s FilterState, d Dialect, paginated bool) (Query, error) {
	var q Query

	if s.searchTerm != "" {
		q.Predicates = append(q.Predicates, searchPredicate(s.searchTerm, d))
	}

	q.Predicates = append(q.Predicates,
		Predicate{SQL: "p.price >= ? AND p.price <= ?", Args: []any{s.priceMin, s.priceMax}},
		Predicate{SQL: "p.quantity >= ? AND p.quantity <= ?", Args: []any{s.stockMin, s.stockMax}},
	)

	if len(s.categories) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.categories)), ", ")
		args := make([]any, len(s.categories))
		for i, name := range s.categories {
			args[i] = name
		}
		q.Predicates = append(q.Predicates, Predicate{SQL: "c.name IN (" + placeholders + ")", Args: args})
	}

	col, err := s.sortColumn.physical()
	if err != nil {
		return Query{}, err
	}
	if s.sortReverse {
		col += " DESC"
	}
	q.OrderBy = append(q.OrderBy, col)
	if s.sortColumn != SortByID {
		q.OrderBy = append(q.OrderBy, "p.id ASC")
	}

	if paginated {
		q.Paginated = true
		q.Limit = s.pageSize
		q.Offset = (max(s.page, 1) - 1) * s.pageSize
	}

	return q, nil
}

var searchColumns = []string{"p.name", "p.description", "p.price", "p.quantity", "c.name"}

func searchPredicate(term string, d Dialect) Predicate {
	pattern := "%" + escapeLike(FoldCase(term)) + "%"

	clauses := make([]string, len(searchColumns))
	args := make([]any, len(searchColumns))
	for i, col := range searchColumns {
		expr := col
		if col == "p.price" || col == "p.quantity" {
			expr = d.CastText(col)
		}
		clauses[i] = fmt.Sprintf("%s LIKE ? ESCAPE '%c'", d.Lower(expr), likeEscape)
		args[i] = pattern
	}

	return Predicate{SQL: "(" + strings.Join(clauses, " OR ") + ")", Args: args}
}

func escapeLike(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '%' || r == '_' || r == likeEscape {
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}
