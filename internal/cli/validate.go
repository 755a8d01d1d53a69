package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/agentdeck/internal/schema"
)

// ValidateResult is the JSON payload of the validate command.
type ValidateResult struct {
	Records int                      `json:"records"`
	Errors  []schema.ValidationError `json:"errors"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog against the record schema",
		Long: `Validate every raw record of the catalog, including records the
browser would skip, and report all errors at once.

Exit codes:
  0 - Catalog valid
  1 - Validation errors
  2 - Catalog could not be read`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			raw, err := rootOpts.loader().LoadRaw(cmd.Context(), rootOpts.Catalog)
			if err != nil {
				return reportLoadError(f, err)
			}

			errs := schema.Validate(raw)
			if len(errs) == 0 {
				return f.Result(fmt.Sprintf("✓ %d records valid", len(raw)), ValidateResult{
					Records: len(raw),
					Errors:  []schema.ValidationError{},
				})
			}

			msg := fmt.Sprintf("%d validation error(s) in %d records", len(errs), len(raw))
			if f.Format == "json" {
				_ = f.Error(ErrCodeValidation, msg, ValidateResult{Records: len(raw), Errors: errs})
			} else {
				lines := make([]string, len(errs))
				for i, e := range errs {
					lines[i] = "  " + e.Error()
				}
				fmt.Fprintf(f.Writer, "✗ %s\n%s\n", msg, strings.Join(lines, "\n"))
			}
			return NewExitError(ExitFailure, msg)
		},
	}
}
