package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/roach88/agentdeck/internal/catalog"
)

//go:embed templates/page.html.tmpl
var pageTemplateText string

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"join":       catalog.JoinOr,
	"orNA":       catalog.Or,
	"badge":      func(category string) string { return catalog.BadgeFor(category).String() },
	"pricing":    func(plans []catalog.PricingPlan) string { return catalog.PricingLabelFor(plans).String() },
	"plan":       catalog.PlanSummary,
	"capitalize": catalog.Capitalize,
	"markdown":   notesHTML,
}).Parse(pageTemplateText))

// notesPolicy sanitizes rendered notes. Catalog notes are third-party text.
var notesPolicy = newNotesPolicy()

func newNotesPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// notesHTML renders markdown notes to sanitized HTML.
func notesHTML(notes string) template.HTML {
	if strings.TrimSpace(notes) == "" {
		return template.HTML(template.HTMLEscapeString(catalog.Placeholder))
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(notes), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(notes))
	}
	return template.HTML(notesPolicy.Sanitize(buf.String()))
}

// ExportPage is the data behind an HTML export.
type ExportPage struct {
	Title    string
	Snapshot Snapshot
	Digest   string
}

type pageData struct {
	Title    string
	Header   string
	Mode     string
	Records  []catalog.Record
	Compare  bool
	Empty    string
	Digest   string
	Criteria string
}

// ExportHTML writes a static page of the snapshot: the comparison in
// compare mode, otherwise the derived view. Links are plain anchors.
func ExportHTML(w io.Writer, page ExportPage) error {
	s := page.Snapshot
	data := pageData{
		Title:  page.Title,
		Mode:   string(s.Mode),
		Digest: catalog.ShortDigest(page.Digest),
		Criteria: fmt.Sprintf("Search: %q | Category: %s | Sort: %s",
			s.Criteria.Search, s.Criteria.Category, s.Criteria.Sort),
	}
	if data.Title == "" {
		data.Title = "Agent catalog"
	}

	if s.Mode == ModeCompare {
		data.Compare = true
		data.Records = s.Compared
		data.Header = fmt.Sprintf("Comparing %d agents", len(s.Compared))
		data.Empty = CompareEmptyMessage
	} else {
		data.Records = s.View
		data.Header = fmt.Sprintf("Showing %d of %d agents", len(s.View), s.Total)
		data.Empty = NoResultsMessage
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
