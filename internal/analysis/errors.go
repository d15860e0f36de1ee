package analysis

import (
	"errors"
	"fmt"
)

// ErrNoFiles is returned when Analyze is called without any files.
// The guard fires before any request is issued.
var ErrNoFiles = errors.New("no files selected")

// mixedFilesSentinel is the error value the analysis server uses to signal
// that futures and spot history files were uploaded together.
const mixedFilesSentinel = "mixed_files"

// MixedFilesError carries the server-provided message for the mixed file
// types condition. Callers treat it as a navigation reset, not a failure.
type MixedFilesError struct {
	Message string
}

func (e *MixedFilesError) Error() string {
	return e.Message
}

// APIError is any other non-OK response from the analysis server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("analysis server returned status %d", e.StatusCode)
}
