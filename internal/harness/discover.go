package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every scenario file under a directory.
const DefaultPattern = "**/*.{yaml,yml}"

// ScenarioDirError is returned when the scenarios directory is unusable.
type ScenarioDirError struct {
	Dir string
	Err error
}

func (e *ScenarioDirError) Error() string {
	return fmt.Sprintf("scenario directory %q: %v", e.Dir, e.Err)
}

func (e *ScenarioDirError) Unwrap() error { return e.Err }

// FindScenarios lists scenario files under dir whose slash-separated
// relative path matches pattern. An empty pattern means DefaultPattern.
// The result is sorted.
func FindScenarios(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q", pattern)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, &ScenarioDirError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &ScenarioDirError{Dir: dir, Err: fmt.Errorf("not a directory")}
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, &ScenarioDirError{Dir: dir, Err: err}
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		ext := filepath.Ext(m)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	slices.Sort(paths)
	return paths, nil
}
