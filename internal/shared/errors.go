package shared

import (
	"fmt"
	"net/http"
)

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Upstream errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrPlaylistForbidden  = fmt.Errorf("playlist not accessible")
	ErrAlbumNotFound      = fmt.Errorf("album not found")
	ErrMalformedPayload   = fmt.Errorf("malformed upstream payload")
	ErrPageLimitExceeded  = fmt.Errorf("page limit exceeded")
)

// UpstreamError is raised by upstream clients when a call completes with a non-2xx status.
type UpstreamError struct {
	Source     string // Upstream name, e.g. "youtube"
	StatusCode int    // HTTP status returned by the upstream
	Reason     string // Machine readable reason, when the upstream provides one
	Message    string // Human readable message, when the upstream provides one
}

func (e *UpstreamError) Error() string {
	text := e.Message
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s API error (status %d, %s): %s", e.Source, e.StatusCode, e.Reason, text)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Source, e.StatusCode, text)
}
