package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ProductCatalog/internal/catalog"
)

// bundleFlags binds the six business fields to command flags.
type bundleFlags struct {
	b catalog.Bundle
}

func (f *bundleFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.b.Title, "title", "", "product title")
	fs.Float64Var(&f.b.Price, "price", 0, "unit price")
	fs.StringVar(&f.b.Description, "description", "", "product description")
	fs.StringVar(&f.b.Thumbnail, "thumbnail", "", "image reference")
	fs.StringVar(&f.b.Code, "code", "", "unique product code")
	fs.IntVar(&f.b.Stock, "stock", 0, "units in stock")
}

// merge overlays the flags the user actually set onto base.
func (f *bundleFlags) merge(cmd *cobra.Command, base catalog.Bundle) catalog.Bundle {
	fs := cmd.Flags()
	if fs.Changed("title") {
		base.Title = f.b.Title
	}
	if fs.Changed("price") {
		base.Price = f.b.Price
	}
	if fs.Changed("description") {
		base.Description = f.b.Description
	}
	if fs.Changed("thumbnail") {
		base.Thumbnail = f.b.Thumbnail
	}
	if fs.Changed("code") {
		base.Code = f.b.Code
	}
	if fs.Changed("stock") {
		base.Stock = f.b.Stock
	}
	return base
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every product in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.catalog.Load(cmd.Context()); err != nil {
				return err
			}
			if asJSON {
				return a.printJSON(a.catalog.Bundles())
			}
			return a.catalog.PrintAll(a.out)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print bundles as JSON")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.catalog.Load(cmd.Context()); err != nil {
				return err
			}
			p, err := a.catalog.FindByID(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return a.printJSON(p.Bundle())
			}
			_, err = fmt.Fprintln(a.out, p.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the bundle as JSON")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var flags bundleFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := catalog.ProductFromBundle(flags.b)
			if err != nil {
				return err
			}
			if err := a.catalog.Load(cmd.Context()); err != nil {
				return err
			}
			if err := a.catalog.Add(p); err != nil {
				return err
			}
			if err := a.catalog.Save(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, p.ID())
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var flags bundleFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace fields of an existing product",
		Long:  "update keeps the product id. Fields without a flag keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.catalog.Load(cmd.Context()); err != nil {
				return err
			}
			current, err := a.catalog.FindByID(args[0])
			if err != nil {
				return err
			}
			p, err := a.catalog.UpdateByID(args[0], flags.merge(cmd, current.Bundle()))
			if err != nil {
				return err
			}
			if err := a.catalog.Save(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, p.String())
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.catalog.Load(cmd.Context()); err != nil {
				return err
			}
			if err := a.catalog.DeleteByID(args[0]); err != nil {
				return err
			}
			return a.catalog.Save(cmd.Context())
		},
	}
}
