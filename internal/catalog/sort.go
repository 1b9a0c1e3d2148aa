package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// SortColumn identifies a sortable catalog column.
type SortColumn int

const (
	SortByID SortColumn = iota
	SortByName
	SortByDescription
	SortByPrice
	SortByQuantity
	SortByCategory
)

// ErrUnknownSortColumn signals a programming error: a SortColumn outside the
// mapped set reached the query builder.
var ErrUnknownSortColumn = errors.New("unknown sort column")

var sortColumnNames = map[SortColumn]string{
	SortByID:          "ID",
	SortByName:        "Name",
	SortByDescription: "Description",
	SortByPrice:       "Price",
	SortByQuantity:    "Quantity",
	SortByCategory:    "Category",
}

// physical column for each sort key
var sortColumnSQL = map[SortColumn]string{
	SortByID:          "p.id",
	SortByName:        "p.name",
	SortByDescription: "p.description",
	SortByPrice:       "p.price",
	SortByQuantity:    "p.quantity",
	SortByCategory:    "c.name",
}

// SortColumns lists every column in display order.
func SortColumns() []SortColumn {
	return []SortColumn{SortByID, SortByName, SortByDescription, SortByPrice, SortByQuantity, SortByCategory}
}

func (c SortColumn) String() string {
	if name, ok := sortColumnNames[c]; ok {
		return name
	}
	return fmt.Sprintf("SortColumn(%d)", int(c))
}

func (c SortColumn) physical() (string, error) {
	col, ok := sortColumnSQL[c]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownSortColumn, int(c))
	}
	return col, nil
}

// ParseSortColumn maps a user-facing column name (case-insensitive) to a SortColumn.
func ParseSortColumn(name string) (SortColumn, bool) {
	for col, label := range sortColumnNames {
		if strings.EqualFold(label, strings.TrimSpace(name)) {
			return col, true
		}
	}
	return SortByID, false
}
