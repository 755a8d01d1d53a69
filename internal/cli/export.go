package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/agentdeck/internal/render"
)

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Out      string      `json:"out"`
	Mode     render.Mode `json:"mode"`
	Shown    int         `json:"shown"`
	Compared int         `json:"compared"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		filters filterFlags
		out     string
		title   string
		compare []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current view as a static HTML page",
		Long: `Write a self-contained HTML page of the filtered view, or of a
comparison when --compare is given. Notes are rendered from markdown and
sanitized.

Examples:
  agentdeck export --out agents.html --tag terminal
  agentdeck export --out compare.html --compare Aider,Cursor`,
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
			for _, name := range compare {
				if err := sess.AddToComparison(name); err != nil {
					f.Warn("cannot add %s: %v", name, err)
				}
			}
			if len(compare) > 0 {
				_ = sess.SwitchMode(render.ModeCompare)
			}

			snap := sess.Snapshot()
			if err := writeExport(out, render.ExportPage{Title: title, Snapshot: snap, Digest: cat.Digest}); err != nil {
				_ = f.Error(ErrCodeWriteFailed, err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to write export", err)
			}

			return f.Result(fmt.Sprintf("Wrote %s (%s, %d of %d agents)", out, snap.Mode, len(snap.View), snap.Total), ExportResult{
				Out:      out,
				Mode:     snap.Mode,
				Shown:    len(snap.View),
				Compared: len(snap.Compared),
			})
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output HTML file (required)")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	cmd.Flags().StringSliceVar(&compare, "compare", nil, "agents to compare instead of the list")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func writeExport(path string, page render.ExportPage) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return render.ExportHTML(file, page)
}
