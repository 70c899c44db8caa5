package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProductCommand exposes the product recall history.
func NewProductCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Inspect the product history",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List remembered products",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			products := app.Products.All()
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), products)
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "NAME\tLAST SUPPLIER\tLAST QTY")
			for _, p := range products {
				supplierName := "-"
				if s, ok := app.Suppliers.Get(p.LastSupplierID); ok {
					supplierName = s.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%d\n", p.Name, supplierName, p.LastQty)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(list)
	return cmd
}
