package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/prompt"
)

func newPlansCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List the active plan catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := wireApp(cmd.Context(), wireOptions{logOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			opts := prompt.PlanOptions(a.catalog.Active(), nil, "")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(opts)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMONTHLY\tTRANSACTIONS\tDEBTS\tRECURRING\tCATEGORIES")
			for _, o := range opts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.Name, o.MonthlyPrice,
					formatLimit(o.Limits.MonthlyTransactions),
					formatLimit(o.Limits.ActiveDebts),
					formatLimit(o.Limits.RecurringTransactions),
					formatLimit(o.Limits.Categories),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}

func formatLimit(n int64) string {
	if limits.IsUnlimited(n) {
		return "unlimited"
	}
	return fmt.Sprint(n)
}
