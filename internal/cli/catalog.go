package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/loader"
	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
	"github.com/roach88/agentdeck/internal/session"
)

// cliWidth is the render width for non-interactive output.
const cliWidth = 100

func (o *RootOptions) loader() *loader.Loader {
	return loader.New(loader.WithLogger(o.Logger()))
}

// loadCatalog loads the configured catalog. Failures are reported through f
// and returned as an ExitError.
func (o *RootOptions) loadCatalog(ctx context.Context, f *OutputFormatter) (*catalog.Catalog, error) {
	cat, err := o.loader().Load(ctx, o.Catalog)
	if err != nil {
		return nil, reportLoadError(f, err)
	}
	f.VerboseLog("Loaded %d agents from %s (digest %s)", len(cat.Records), cat.Source, catalog.ShortDigest(cat.Digest))
	for _, issue := range cat.Issues {
		f.VerboseLog("  skipped record %d %q: %s", issue.Index, issue.Name, issue.Reason)
	}
	return cat, nil
}

func reportLoadError(f *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	var le *loader.LoadError
	if errors.As(err, &le) {
		code = le.Code
	}
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, "failed to load catalog", err)
}

// newSession starts a session with the configured default sort and view.
func (o *RootOptions) newSession(cat *catalog.Catalog) *session.Session {
	cfg := o.Config()
	criteria := query.DefaultCriteria()
	criteria.Sort = cfg.SortKey()
	return session.New(cat,
		session.WithLogger(o.Logger()),
		session.WithCriteria(criteria),
		session.WithMode(cfg.Mode()),
	)
}

func plainRenderer() *render.Renderer {
	return render.New(render.Options{Width: cliWidth, Plain: true})
}

// filterFlags are the view filters shared by list and export.
type filterFlags struct {
	Search   string
	Category string
	Tags     []string
	Sort     string
	View     string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.Search, "search", "", "case-insensitive text search")
	cmd.Flags().StringVar(&ff.Category, "category", "", "exact category (default all)")
	cmd.Flags().StringSliceVar(&ff.Tags, "tag", nil, "select a pill: category, tag or interface (repeatable)")
	cmd.Flags().StringVar(&ff.Sort, "sort", "", "sort key: name-asc, name-desc, category-asc, autonomy-rank, pricing-asc")
	cmd.Flags().StringVar(&ff.View, "view", "", "display mode: grid, list or compare")
}

// apply performs the flag-driven session operations in a fixed order.
// Invalid sort keys and modes are flag errors.
func (ff *filterFlags) apply(sess *session.Session, f *OutputFormatter) error {
	if ff.Search != "" {
		sess.SetSearch(ff.Search)
	}
	if ff.Category != "" {
		sess.SetCategory(ff.Category)
	}
	if ff.Sort != "" {
		if err := sess.SetSort(query.SortKey(ff.Sort)); err != nil {
			return flagError(f, err)
		}
	}
	if ff.View != "" {
		if err := sess.SwitchMode(render.Mode(ff.View)); err != nil {
			return flagError(f, err)
		}
	}

	known := make(map[string]bool, len(sess.Facets()))
	for _, facet := range sess.Facets() {
		known[facet.Key] = true
	}
	for _, tag := range ff.Tags {
		if !known[tag] {
			f.Warn("no agent has the pill %q", tag)
		}
		if !sess.ToggleTag(tag) {
			// Repeated --tag toggles back off; keep it selected.
			sess.ToggleTag(tag)
		}
	}
	return nil
}

func flagError(f *OutputFormatter, err error) error {
	_ = f.Error(ErrCodeInvalidFlag, err.Error(), nil)
	return WrapExitError(ExitCommandError, "invalid flag", err)
}

func unknownAgent(f *OutputFormatter, name string) error {
	msg := fmt.Sprintf("unknown agent %q", name)
	_ = f.Error(ErrCodeUnknownAgent, msg, nil)
	return NewExitError(ExitCommandError, msg)
}
