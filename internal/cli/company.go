package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/directory"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
)

// NewCompanyCommand links the device to a multi-store organization and
// exchanges snapshots with it.
func NewCompanyCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Link this device to a multi-store organization",
	}

	create := &cobra.Command{
		Use:   "create <store-name>",
		Short: "Create a new organization with this store as its first member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			if link, ok := app.Company.Get(); ok {
				return fmt.Errorf("already linked to organization %s as %q", link.OrgID, link.StoreName)
			}
			org, err := app.Directory.Create(ctx, args[0])
			if err != nil {
				return err
			}
			app.Company.Set(ctx, entity.CompanyLink{
				Code:      org.Code,
				OrgID:     org.OrgID,
				StoreName: args[0],
				JoinedAt:  time.Now().UnixMilli(),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Organization created. Join code: %s\n", org.Code)
			return nil
		},
	}

	join := &cobra.Command{
		Use:   "join <code> <store-name>",
		Short: "Join an existing organization by code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			if link, ok := app.Company.Get(); ok {
				return fmt.Errorf("already linked to organization %s as %q", link.OrgID, link.StoreName)
			}
			org, err := app.Directory.Join(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			app.Company.Set(ctx, entity.CompanyLink{
				Code:      args[0],
				OrgID:     org.OrgID,
				StoreName: args[1],
				JoinedAt:  time.Now().UnixMilli(),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Joined organization %s (%d stores)\n", org.OrgID, len(org.Stores))
			return nil
		},
	}

	stores := &cobra.Command{
		Use:   "stores",
		Short: "List the organization's stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			link, ok := app.Company.Get()
			if !ok {
				return fmt.Errorf("not linked to an organization")
			}
			names, err := app.Directory.ListStores(cmd.Context(), link.Code)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), names)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	publish := &cobra.Command{
		Use:   "publish",
		Short: "Publish this store's snapshot to the organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			link, ok := app.Company.Get()
			if !ok {
				return fmt.Errorf("not linked to an organization")
			}
			svc := directory.NewService(app.Directory, app.Snapshots, nil)
			if err := svc.Publish(ctx, link.Code, link.StoreName, app.Sessions, app.Suppliers); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Snapshot published")
			return nil
		},
	}

	fetch := &cobra.Command{
		Use:   "fetch <store-name>",
		Short: "Fetch a sibling store's snapshot (served stale if the directory is down)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			link, ok := app.Company.Get()
			if !ok {
				return fmt.Errorf("not linked to an organization")
			}
			svc := directory.NewService(app.Directory, app.Snapshots, nil)
			snap, stale, err := svc.Snapshot(ctx, link.Code, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if stale {
				fmt.Fprintln(out, "! directory unreachable, showing cached snapshot")
			}
			if opts.Format == "json" {
				return printJSON(out, snap)
			}
			fmt.Fprintf(out, "%s: %d session(s), %d supplier(s), published %s\n",
				snap.StoreName, len(snap.Sessions), len(snap.Suppliers), formatMillis(snap.PublishedAt))
			return nil
		},
	}

	cmd.AddCommand(create, join, stores, publish, fetch)
	return cmd
}
