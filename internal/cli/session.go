package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/repo"
)

// NewSessionCommand manages restock sessions and their line items.
func NewSessionCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage restock sessions",
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Start a new restock session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			sess := app.Sessions.Create(cmd.Context())
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), sess)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started session %s\n", sess.ID)
			return nil
		},
	}

	var supplierName string
	add := &cobra.Command{
		Use:   "add <session-id> <product> <quantity>",
		Short: "Add an item to a session",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			qty, err := strconv.Atoi(args[2])
			if err != nil || qty <= 0 {
				return fmt.Errorf("quantity must be a positive integer, got %q", args[2])
			}

			supplierID := ""
			if supplierName != "" {
				s, ok := app.Suppliers.FindByName(supplierName)
				if !ok {
					return fmt.Errorf("no supplier named %q: add it first with 'restock supplier add'", supplierName)
				}
				supplierID = s.ID
			}

			item, err := app.Sessions.AddItem(ctx, args[0], args[1], qty, supplierID)
			if err != nil {
				return err
			}

			// Remember the choice for next time's recall.
			fields := repo.ProductFields{LastQty: &qty}
			if supplierID != "" {
				fields.LastSupplierID = &supplierID
			}
			app.Products.UpsertByName(ctx, args[1], fields)

			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s x%d\n", item.ProductName, item.Quantity)
			return nil
		},
	}
	add.Flags().StringVar(&supplierName, "supplier", "", "supplier name (matched case-insensitively)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			sessions := app.Sessions.All()
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), sessions)
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tITEMS")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.ID, formatMillis(s.CreatedAt), s.Status, len(s.Items))
			}
			return w.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session's items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			sess, ok := app.Sessions.Get(args[0])
			if !ok {
				return fmt.Errorf("no session with id %s", args[0])
			}
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), sess)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s (%s, %s)\n", sess.ID, sess.Status, formatMillis(sess.CreatedAt))
			w := newTable(out)
			fmt.Fprintln(w, "ITEM\tQTY\tSUPPLIER")
			for _, it := range sess.Items {
				supplierName := "-"
				if s, ok := app.Suppliers.Get(it.SupplierID); ok {
					supplierName = s.Name
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", it.ProductName, it.Quantity, supplierName)
			}
			return w.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session (allowed from any status)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Sessions.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session deleted")
			return nil
		},
	}

	cmd.AddCommand(start, add, list, show, del)
	return cmd
}
