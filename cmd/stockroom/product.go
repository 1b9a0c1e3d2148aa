package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	"github.com/alexisbeaulieu97/stockroom/internal/store"
)

type productOptions struct {
	name        string
	description string
	price       int64
	quantity    int64
	category    string
}

func newProductCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Add, edit or delete products",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newProductAddCmd(app))
	cmd.AddCommand(newProductEditCmd(app))
	cmd.AddCommand(newProductDeleteCmd(app))

	return cmd
}

func addProductFlags(cmd *cobra.Command, opts *productOptions) {
	cmd.Flags().StringVar(&opts.name, "name", "", "Product name")
	cmd.Flags().StringVar(&opts.description, "description", "", "Product description")
	cmd.Flags().Int64Var(&opts.price, "price", 0, "Unit price in whole currency units")
	cmd.Flags().Int64Var(&opts.quantity, "quantity", 0, "Units in stock")
	cmd.Flags().StringVar(&opts.category, "category", "", "Name of an existing category")
}

func newProductAddCmd(app *AppContext) *cobra.Command {
	opts := &productOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to an existing category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductAdd(cmd, app, opts)
		},
	}

	addProductFlags(cmd, opts)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runProductAdd(cmd *cobra.Command, app *AppContext, opts *productOptions) error {
	ctx, cfg, log, err := app.CommandContext(cmd, "command.product.add")
	if err != nil {
		return err
	}

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	category, err := s.CategoryByName(ctx, opts.category)
	if err != nil {
		return newCommandError("add product", fmt.Sprintf("looking up category %q", opts.category), err,
			"Create it first with 'stockroom category add'.")
	}

	p, err := s.CreateProduct(ctx, catalog.Product{
		Name:        strings.TrimSpace(opts.name),
		Description: opts.description,
		Price:       opts.price,
		Quantity:    opts.quantity,
		CategoryID:  category.ID,
	})
	if err != nil {
		return newCommandError("add product", "inserting "+opts.name, err, "Price and quantity must not be negative.")
	}

	log.Info("product added", "product_id", p.ID, "category", p.Category)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Added product %d '%s' to %s\n", p.ID, p.Name, p.Category)
	return nil
}

func newProductEditCmd(app *AppContext) *cobra.Command {
	opts := &productOptions{}

	cmd := &cobra.Command{
		Use:   "edit <product-id>",
		Short: "Change the fields given as flags",
		Long: `Edit loads the product and overwrites only the fields whose flags are set.
Moving a product means passing the name of another existing category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductEdit(cmd, app, args[0], opts)
		},
	}

	addProductFlags(cmd, opts)

	return cmd
}

func runProductEdit(cmd *cobra.Command, app *AppContext, rawID string, opts *productOptions) error {
	id, err := parseProductID("edit product", rawID)
	if err != nil {
		return err
	}

	ctx, cfg, log, err := app.CommandContext(cmd, "command.product.edit")
	if err != nil {
		return err
	}

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.Product(ctx, id)
	if err != nil {
		return newCommandError("edit product", fmt.Sprintf("looking up product %d", id), err, "Run 'stockroom list' to see product IDs.")
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = strings.TrimSpace(opts.name)
	}
	if flags.Changed("description") {
		p.Description = opts.description
	}
	if flags.Changed("price") {
		p.Price = opts.price
	}
	if flags.Changed("quantity") {
		p.Quantity = opts.quantity
	}
	if flags.Changed("category") {
		category, err := s.CategoryByName(ctx, opts.category)
		if err != nil {
			return newCommandError("edit product", fmt.Sprintf("looking up category %q", opts.category), err,
				"Create it first with 'stockroom category add'.")
		}
		p.CategoryID = category.ID
		p.Category = category.Name
	}

	if err := s.UpdateProduct(ctx, p); err != nil {
		return newCommandError("edit product", fmt.Sprintf("saving product %d", id), err, "Price and quantity must not be negative.")
	}

	log.Info("product updated", "product_id", p.ID)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated product %d '%s'\n", p.ID, p.Name)
	return nil
}

func newProductDeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID("delete product", args[0])
			if err != nil {
				return err
			}

			ctx, cfg, log, err := app.CommandContext(cmd, "command.product.delete")
			if err != nil {
				return err
			}

			s, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteProduct(ctx, id); err != nil {
				suggestion := "Check that the database is writable."
				if errors.Is(err, store.ErrNotFound) {
					suggestion = "Run 'stockroom list' to see product IDs."
				}
				return newCommandError("delete product", fmt.Sprintf("removing product %d", id), err, suggestion)
			}

			log.Info("product deleted", "product_id", id)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted product %d\n", id)
			return nil
		},
	}
}

func parseProductID(operation, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, newCommandError(operation, "validating product ID", fmt.Errorf("invalid product ID %q", raw),
			"Product IDs are positive integers; run 'stockroom list' to see them.")
	}
	return id, nil
}
