package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/dispatch"
)

// NewSendCommand dispatches a session's order emails.
func NewSendCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "send <session-id>",
		Short: "Email the session's orders to every supplier",
		Long:  "Groups the session's items by supplier and sends one order email per\nsupplier. A failure for one supplier never blocks the others; the run\nends in full success, partial success, or full failure.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			out := cmd.OutOrStdout()

			d := dispatch.NewDispatcher(app.Relay, app.Sessions, app.Suppliers, app.Profile, app.DeviceID, nil)
			groups, err := d.Prepare(args[0])
			if err != nil {
				return err
			}

			for _, g := range groups {
				if !g.Addressable() {
					fmt.Fprintf(out, "! %d item(s) have no supplier and will NOT be sent:\n", len(g.Items))
					for _, it := range g.Items {
						fmt.Fprintf(out, "    - %s x%d\n", it.ProductName, it.Quantity)
					}
					continue
				}
				fmt.Fprintf(out, "%s <%s>: %d item(s)\n", g.SupplierName, orDash(g.SupplierEmail), len(g.Items))
			}

			if !yes {
				fmt.Fprint(out, "Send these orders? [y/N] ")
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					d.Cancel()
					fmt.Fprintln(out, "Canceled, nothing sent")
					return nil
				}
			}

			result, err := d.Send(cmd.Context())
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return printJSON(out, result)
			}
			fmt.Fprintln(out, result.Message)
			for _, g := range result.Groups {
				if g.OK() {
					fmt.Fprintf(out, "  ok    %s\n", g.SupplierName)
				} else {
					fmt.Fprintf(out, "  fail  %s\n", g.Reason)
				}
			}
			if result.Outcome == dispatch.AllFailed {
				return fmt.Errorf("no orders were sent")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
