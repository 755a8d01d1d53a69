package loader

import "fmt"

// Error codes for load failures.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeFetchFailed = "E004" // HTTP fetch failed or returned a non-2xx status
	ErrCodeNotFound    = "E005" // File not found
	ErrCodeParseFailed = "E006" // Document could not be decoded
	ErrCodeUnsupported = "E007" // Unknown format or scheme
	ErrCodeEmpty       = "E008" // No usable records
)

// LoadError is a catalog load failure.
type LoadError struct {
	Code     string
	Message  string
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Location != "" {
		msg += " (" + e.Location + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

func loadErr(code, location, message string, err error) *LoadError {
	return &LoadError{Code: code, Message: message, Location: location, Err: err}
}
