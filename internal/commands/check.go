package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aims-dev/sectorburst/internal/allocation"
)

func newCheckCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Report data-quality issues in an allocation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allocs, err := allocation.ReadFile(args[0])
			if err != nil {
				return err
			}
			table, err := a.reference()
			if err != nil {
				return err
			}

			issues := allocation.Check(allocs, table)
			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintf(out, "%s: no issues (%d allocations)\n", args[0], len(allocs))
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintln(out, issue.Error())
			}

			if strict {
				return fmt.Errorf("%d issue(s) found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero if any issue is found")

	return cmd
}
