package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/repo"
)

// NewSupplierCommand manages the supplier collection.
func NewSupplierCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplier",
		Short: "Manage suppliers",
	}

	var email string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a supplier, or update one matching the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			fields := repo.SupplierFields{}
			if cmd.Flags().Changed("email") {
				fields.Email = &email
			}
			s := app.Suppliers.UpsertByName(cmd.Context(), args[0], fields)

			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), s)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Supplier %s (%s) saved\n", s.Name, s.ID)
			return nil
		},
	}
	add.Flags().StringVar(&email, "email", "", "order email address")

	list := &cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			suppliers := app.Suppliers.All()
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), suppliers)
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tEMAIL")
			for _, s := range suppliers {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, orDash(s.Email))
			}
			return w.Flush()
		},
	}

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.Suppliers.RemoveByID(cmd.Context(), args[0]) {
				return fmt.Errorf("no supplier with id %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Supplier removed")
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}
