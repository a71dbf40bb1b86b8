package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <code>...",
		Short: "Look up sector codes in the reference table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.reference()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var unknown []string
			for _, code := range args {
				e, ok := table.Resolve(code)
				if !ok {
					unknown = append(unknown, code)
					fmt.Fprintf(out, "%s\tunknown\n", code)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s %s\t%s %s\n",
					e.Code, e.Name, e.CategoryCode, e.CategoryName, e.GroupCode, e.GroupName)
			}

			if len(unknown) > 0 {
				return fmt.Errorf("unknown sector code(s): %s", strings.Join(unknown, ", "))
			}
			return nil
		},
	}
}
