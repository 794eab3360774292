package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ledgerly/ledgerly/pkg/limits"
)

func newUsageCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "usage <user-id>",
		Short: "Show a user's plan, usage and remaining quota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil || userID == uuid.Nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			a, err := wireApp(cmd.Context(), wireOptions{logOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			info, err := a.resolver.Resolve(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "plan: %s (%s)\n", info.Plan.Title(), info.Plan.ID)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "QUOTA\tUSED\tLIMIT\tREMAINING\tUSED %")
			for _, lt := range limits.All() {
				used, limit, err := info.UsageOf(lt)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\n",
					lt.Label(), used, formatLimit(limit),
					formatLimit(limits.Remaining(used, limit)),
					limits.Percentage(used, limit))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}
