package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/agentdeck/internal/catalog"
)

//go:embed schema.cue
var schemaCUE string

// Validation error codes (E101-E109)
const (
	ErrNameEmpty      = "E101" // name is required
	ErrCategoryEmpty  = "E102" // category (or legacy type) is required
	ErrDuplicateName  = "E103" // name already used by an earlier record
	ErrInvalidLink    = "E104" // link is not an absolute http(s) URL
	ErrNegativePrice  = "E105" // price below zero
	ErrSchemaMismatch = "E106" // record violates #Record
	ErrSchemaInvalid  = "E109" // embedded schema failed to compile
)

// ValidationError is one problem found in one record.
type ValidationError struct {
	Index   int    `json:"index"`
	Name    string `json:"name,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("[%s] record %d (%s) %s: %s", e.Code, e.Index, e.Name, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] record %d %s: %s", e.Code, e.Index, e.Field, e.Message)
}

// Validate checks raw records and returns every error found, in record
// order. A nil result means the catalog is clean.
//
// The coded checks run on the raw records. The #Record schema check runs on
// each record's migrated form, so legacy documents are judged by what the
// browser will actually show.
func Validate(raw []catalog.RawRecord) []ValidationError {
	var errs []ValidationError

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{Index: -1, Field: "schema", Message: err.Error(), Code: ErrSchemaInvalid}}
	}
	def := schema.LookupPath(cue.ParsePath("#Record"))

	seen := make(map[string]int, len(raw))
	for i, rr := range raw {
		name := strings.TrimSpace(rr.Name)
		rec := catalog.NormalizeRecord(rr)
		errs = append(errs, checkRecord(i, name, rr)...)

		if name != "" {
			if first, dup := seen[rec.Name]; dup {
				errs = append(errs, ValidationError{
					Index:   i,
					Name:    name,
					Field:   "name",
					Message: fmt.Sprintf("duplicate name, first used by record %d", first),
					Code:    ErrDuplicateName,
				})
			} else {
				seen[rec.Name] = i
			}
		}

		// Records already failing a required field would only repeat it.
		if rec.Name == "" || rec.Category == "" {
			continue
		}
		if msg := checkSchema(ctx, def, rec); msg != "" {
			errs = append(errs, ValidationError{
				Index:   i,
				Name:    name,
				Field:   "record",
				Message: msg,
				Code:    ErrSchemaMismatch,
			})
		}
	}
	return errs
}

func checkRecord(i int, name string, rr catalog.RawRecord) []ValidationError {
	var errs []ValidationError
	add := func(field, code, msg string) {
		errs = append(errs, ValidationError{Index: i, Name: name, Field: field, Message: msg, Code: code})
	}

	if name == "" {
		add("name", ErrNameEmpty, "name is required and must be non-empty")
	}
	if strings.TrimSpace(rr.Category) == "" && strings.TrimSpace(rr.Type) == "" {
		add("category", ErrCategoryEmpty, "category is required and must be non-empty")
	}

	for _, kind := range slices.Sorted(maps.Keys(rr.Links)) {
		link := rr.Links[kind]
		if strings.TrimSpace(link) == "" {
			continue
		}
		if !isWebURL(link) {
			add("links."+kind, ErrInvalidLink, fmt.Sprintf("%q is not an absolute http(s) URL", link))
		}
	}

	for j, p := range rr.PricingUSD {
		if p.PricePerMonth != nil && *p.PricePerMonth < 0 {
			add(fmt.Sprintf("pricing_usd[%d].price_per_month", j), ErrNegativePrice,
				fmt.Sprintf("price must not be negative, got %v", *p.PricePerMonth))
		}
		if p.PricePerUserMonth != nil && *p.PricePerUserMonth < 0 {
			add(fmt.Sprintf("pricing_usd[%d].price_per_user_month", j), ErrNegativePrice,
				fmt.Sprintf("price must not be negative, got %v", *p.PricePerUserMonth))
		}
	}
	return errs
}

// checkSchema unifies a record with #Record and returns the violation, or
// "" when it conforms.
func checkSchema(ctx *cue.Context, def cue.Value, rec catalog.Record) string {
	data, err := json.Marshal(rec)
	if err != nil {
		return err.Error()
	}
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return err.Error()
	}
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		msgs := make([]string, 0, 1)
		for _, e := range cueerrors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func isWebURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
