package cli

import (
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print every field of one agent",
		Long: `Print the detail view of one agent. Names are matched exactly.

Exit codes:
  0 - Agent found
  2 - Unknown agent or unreadable catalog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cat, err := rootOpts.loadCatalog(cmd.Context(), f)
			if err != nil {
				return err
			}

			sess := rootOpts.newSession(cat)
			if !sess.OpenDetail(args[0]) {
				return unknownAgent(f, args[0])
			}
			rec, _ := sess.Detail()
			return f.Result(plainRenderer().Detail(rec), rec)
		},
	}
}
