package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCommand wipes every persisted record on this device.
func NewResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all local data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to wipe local data without --yes")
			}
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			app.Store.Clear(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "All local data deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the wipe")
	return cmd
}
