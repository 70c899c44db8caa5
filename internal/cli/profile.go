package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
)

// NewProfileCommand manages the sender profile.
func NewProfileCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the sender profile",
	}

	var name, email, storeName string
	set := &cobra.Command{
		Use:   "set",
		Short: "Create or update the sender profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			updated := app.Profile.Update(cmd.Context(), func(p entity.Profile) entity.Profile {
				// Flags the user did not pass keep their stored value.
				if cmd.Flags().Changed("name") {
					p.Name = name
				}
				if cmd.Flags().Changed("email") {
					p.Email = email
				}
				if cmd.Flags().Changed("store") {
					p.StoreName = storeName
				}
				return p
			})

			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), updated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved: %s <%s>\n", updated.Name, updated.Email)
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "sender name")
	set.Flags().StringVar(&email, "email", "", "reply-to email address")
	set.Flags().StringVar(&storeName, "store", "", "store name")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the sender profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			p, ok := app.Profile.Get()
			if !ok {
				return fmt.Errorf("no profile yet: run 'restock profile set'")
			}
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), p)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Name:   %s\n", p.Name)
			fmt.Fprintf(w, "Email:  %s\n", p.Email)
			fmt.Fprintf(w, "Store:  %s\n", orDash(p.StoreName))
			return nil
		},
	}

	cmd.AddCommand(set, show)
	return cmd
}
