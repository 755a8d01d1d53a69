package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/render"
	"github.com/roach88/agentdeck/internal/selection"
)

// Rejection records a name the comparison refused.
type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CompareResult is the JSON payload of the compare command.
type CompareResult struct {
	Compared []catalog.Record `json:"compared"`
	Rejected []Rejection      `json:"rejected"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <name>...",
		Short: "Compare up to three agents side by side",
		Long: `Add agents to the comparison in order and print it.

A name that cannot be added (unknown, duplicate, or past the limit of
three) is reported as a warning and the rest still run.

Examples:
  agentdeck compare Aider "Claude CLI" Cursor`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cat, err := rootOpts.loadCatalog(cmd.Context(), f)
			if err != nil {
				return err
			}

			sess := rootOpts.newSession(cat)
			rejected := []Rejection{}
			for _, name := range args {
				if err := sess.AddToComparison(name); err != nil {
					f.Warn("cannot add %s: %v", name, err)
					rejected = append(rejected, Rejection{Name: name, Reason: err.Error()})
				}
			}
			_ = sess.SwitchMode(render.ModeCompare)

			compared := sess.Compared()
			f.VerboseLog("Comparing %d/%d agents", len(compared), selection.MaxCompared)
			return f.Result(plainRenderer().Compare(compared), CompareResult{
				Compared: compared,
				Rejected: rejected,
			})
		},
	}
}
