package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
)

// fixed columns other than the description take roughly this many cells
const listFixedWidth = 60

type listOptions struct {
	filters    filterFlags
	jsonOutput bool
}

func newListCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the filtered catalog",
		Example: `  stockroom list --search book
  stockroom list --price-min 10 --price-max 50 --sort price --desc
  stockroom list --category Books --category Food --page 2 --page-size 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, opts)
		},
	}

	addFilterFlags(cmd, &opts.filters, true)
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, app *AppContext, opts *listOptions) error {
	ctx, cfg, log, err := app.CommandContext(cmd, "command.list")
	if err != nil {
		return err
	}

	state, err := opts.filters.state(cfg.Catalog.PageSize)
	if err != nil {
		return newCommandError("list products", "parsing filters", err, filterSuggestion())
	}

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	view := catalog.NewView(s, state.PageSize())
	if err := view.Load(ctx, state); err != nil {
		log.Error(err, "catalog query failed")
		return newCommandError("list products", "querying the catalog", err, "Check that the database is reachable.")
	}
	page := view.Snapshot()
	log.Debug("catalog page loaded", "page", page.Page, "rows", len(page.Rows), "total", page.TotalItems)

	if opts.jsonOutput {
		return renderListJSON(cmd.OutOrStdout(), page)
	}
	out := cmd.OutOrStdout()
	return renderListTable(out, page, supportsUnicode(out), terminalWidth(out))
}

func renderListTable(w io.Writer, page catalog.Page, unicode bool, width int) error {
	if len(page.Rows) == 0 {
		fmt.Fprintln(w, "No products match the current filters")
		fmt.Fprintln(w, page.Showing())
		return nil
	}

	descWidth := 0
	if width > 0 {
		descWidth = max(width-listFixedWidth, 12)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(listHeaders(page.Filter, unicode), "\t"))
	for _, p := range page.Rows {
		desc := p.Description
		if descWidth > 0 {
			desc = truncate(desc, descWidth, unicode)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t$%d\t%d\t%s\n", p.ID, p.Name, desc, p.Price, p.Quantity, p.Category)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sep := "|"
	if unicode {
		sep = "•"
	}
	_, err := fmt.Fprintf(w, "\nPage %d of %d  %s  %s\n", page.Page, page.TotalPages, sep, page.Showing())
	return err
}

// listHeaders upper-cases the column names and marks the sort column.
func listHeaders(state catalog.FilterState, unicode bool) []string {
	up, down := "(asc)", "(desc)"
	if unicode {
		up, down = "▲", "▼"
	}

	headers := make([]string, 0, len(catalog.SortColumns()))
	for _, col := range catalog.SortColumns() {
		name := strings.ToUpper(col.String())
		if col == state.SortColumn() {
			if state.SortReverse() {
				name += " " + down
			} else {
				name += " " + up
			}
		}
		headers = append(headers, name)
	}
	return headers
}

type listJSONProduct struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	Category    string `json:"category"`
}

type listJSONPayload struct {
	Version     string            `json:"version"`
	Page        int               `json:"page"`
	PageSize    int               `json:"page_size"`
	TotalPages  int               `json:"total_pages"`
	TotalItems  int               `json:"total_items"`
	CatalogSize int               `json:"catalog_size"`
	SortBy      string            `json:"sort_by"`
	Descending  bool              `json:"descending"`
	Filters     []string          `json:"filters"`
	Products    []listJSONProduct `json:"products"`
}

func renderListJSON(w io.Writer, page catalog.Page) error {
	payload := listJSONPayload{
		Version:     "1.0",
		Page:        page.Page,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		CatalogSize: page.CatalogSize,
		SortBy:      strings.ToLower(page.Filter.SortColumn().String()),
		Descending:  page.Filter.SortReverse(),
		Filters:     page.Filter.Describe(),
		Products:    make([]listJSONProduct, len(page.Rows)),
	}
	if payload.Filters == nil {
		payload.Filters = []string{}
	}

	for i, p := range page.Rows {
		payload.Products[i] = listJSONProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Category:    p.Category,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// terminalWidth is zero when writer is not a terminal, meaning no truncation.
func terminalWidth(writer any) int {
	file, ok := writer.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func truncate(s string, n int, unicode bool) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if unicode {
		return string(r[:n-1]) + "…"
	}
	return string(r[:n-3]) + "..."
}

