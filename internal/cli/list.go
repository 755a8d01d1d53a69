package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
)

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Total    int              `json:"total"`
	Shown    int              `json:"shown"`
	Criteria query.Criteria   `json:"criteria"`
	Tags     []string         `json:"tags"`
	Mode     render.Mode      `json:"mode"`
	Records  []catalog.Record `json:"records"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered, sorted agent list",
		Long: `Print the agents that match the filters.

Search matches name, category, capabilities, interfaces, tags and
notes. Pills are OR-ed together and AND-ed with the search and category.

Examples:
  agentdeck list --search review --sort autonomy-rank
  agentdeck list --tag terminal --tag "IDE Commercial" --view list
  agentdeck list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cat, err := rootOpts.loadCatalog(cmd.Context(), f)
			if err != nil {
				return err
			}

			sess := rootOpts.newSession(cat)
			if err := filters.apply(sess, f); err != nil {
				return err
			}

			snap := sess.Snapshot()
			tags := sess.SelectedTags()
			if tags == nil {
				tags = []string{}
			}
			return f.Result(plainRenderer().Render(snap), ListResult{
				Total:    snap.Total,
				Shown:    len(snap.View),
				Criteria: snap.Criteria,
				Tags:     tags,
				Mode:     snap.Mode,
				Records:  snap.View,
			})
		},
	}

	filters.register(cmd)
	return cmd
}
