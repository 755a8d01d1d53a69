package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/roach88/agentdeck/internal/catalog"
)

// maxDocumentSize bounds a fetched or read document.
const maxDocumentSize = 32 << 20

// Format is a catalog document format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatCUE    Format = "cue"
	FormatSQLite Format = "sqlite"
)

// FormatFor picks a format from a file name. Unknown extensions yield "".
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".cue":
		return FormatCUE
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return ""
	}
}

// Loader loads catalogs.
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) locations.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads a catalog with a default Loader.
func Load(ctx context.Context, location string) (*catalog.Catalog, error) {
	return New().Load(ctx, location)
}

// Load reads, decodes and normalizes the catalog at location.
// Failures are *LoadError and are logged with their cause.
func (l *Loader) Load(ctx context.Context, location string) (*catalog.Catalog, error) {
	cat, err := l.load(ctx, location)
	if err != nil {
		l.logger.Error("catalog load failed", "location", location, "error", err)
		return nil, err
	}
	for _, issue := range cat.Issues {
		l.logger.Warn("catalog record skipped", "location", location, "index", issue.Index, "name", issue.Name, "reason", issue.Reason)
	}
	l.logger.Info("catalog loaded",
		"location", location,
		"records", len(cat.Records),
		"skipped", len(cat.Issues),
		"digest", catalog.ShortDigest(cat.Digest))
	return cat, nil
}

// LoadRaw reads and decodes the document at location without normalizing
// it. Validation works on raw records so it can report what Normalize drops.
func (l *Loader) LoadRaw(ctx context.Context, location string) ([]catalog.RawRecord, error) {
	raw, err := l.readRaw(ctx, location)
	if err != nil {
		l.logger.Error("catalog load failed", "location", location, "error", err)
		return nil, err
	}
	return raw, nil
}

func (l *Loader) load(ctx context.Context, location string) (*catalog.Catalog, error) {
	raw, err := l.readRaw(ctx, location)
	if err != nil {
		return nil, err
	}

	records, issues := catalog.Normalize(raw)
	if len(records) == 0 {
		msg := "catalog has no records"
		if len(issues) > 0 {
			msg = fmt.Sprintf("catalog has no usable records (%d skipped)", len(issues))
		}
		return nil, loadErr(ErrCodeEmpty, location, msg, nil)
	}
	return catalog.New(location, records, issues), nil
}

func (l *Loader) readRaw(ctx context.Context, location string) ([]catalog.RawRecord, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, loadErr(ErrCodeGeneric, location, "no catalog location given", nil)
	}

	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return l.fetch(ctx, location)
	case strings.HasPrefix(location, "file://"):
		u, err := url.Parse(location)
		if err != nil {
			return nil, loadErr(ErrCodeGeneric, location, "invalid file URL", err)
		}
		return readFile(ctx, location, u.Path)
	case strings.Contains(location, "://"):
		return nil, loadErr(ErrCodeUnsupported, location, "unsupported URL scheme", nil)
	default:
		return readFile(ctx, location, location)
	}
}

func readFile(ctx context.Context, location, name string) ([]catalog.RawRecord, error) {
	format := FormatFor(name)
	if format == "" {
		return nil, loadErr(ErrCodeUnsupported, location, fmt.Sprintf("unsupported catalog format %q", filepath.Ext(name)), nil)
	}

	info, err := os.Stat(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, loadErr(ErrCodeNotFound, location, "catalog file not found", nil)
	case err != nil:
		return nil, loadErr(ErrCodeGeneric, location, "cannot access catalog file", err)
	case info.IsDir():
		return nil, loadErr(ErrCodeGeneric, location, "catalog path is a directory", nil)
	}

	if format == FormatSQLite {
		raw, err := readSQLite(ctx, name)
		if err != nil {
			return nil, loadErr(ErrCodeParseFailed, location, "cannot read sqlite catalog", err)
		}
		return raw, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, loadErr(ErrCodeGeneric, location, "cannot open catalog file", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxDocumentSize))
	if err != nil {
		return nil, loadErr(ErrCodeGeneric, location, "cannot read catalog file", err)
	}
	return decode(location, format, filepath.Base(name), data)
}

// fetch performs the single read-only GET for a remote catalog. URLs
// without a recognizable extension are treated as JSON.
func (l *Loader) fetch(ctx context.Context, location string) ([]catalog.RawRecord, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, loadErr(ErrCodeGeneric, location, "invalid URL", err)
	}
	format := FormatFor(path.Base(u.Path))
	switch format {
	case "":
		format = FormatJSON
	case FormatSQLite:
		return nil, loadErr(ErrCodeUnsupported, location, "sqlite catalogs must be local files", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, loadErr(ErrCodeGeneric, location, "cannot build request", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/plain")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, loadErr(ErrCodeFetchFailed, location, "fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, loadErr(ErrCodeFetchFailed, location, fmt.Sprintf("fetch returned HTTP %d", resp.StatusCode), nil)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, loadErr(ErrCodeFetchFailed, location, "reading response body", err)
	}
	return decode(location, format, path.Base(u.Path), data)
}

func decode(location string, format Format, filename string, data []byte) ([]catalog.RawRecord, error) {
	var (
		raw []catalog.RawRecord
		err error
	)
	switch format {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatCUE:
		raw, err = decodeCUE(filename, data)
	default:
		return nil, loadErr(ErrCodeUnsupported, location, fmt.Sprintf("unsupported catalog format %q", format), nil)
	}
	if err != nil {
		return nil, loadErr(ErrCodeParseFailed, location, fmt.Sprintf("cannot parse %s catalog", format), err)
	}
	return raw, nil
}
