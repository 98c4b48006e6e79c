package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// Client facing messages.
const (
	MsgPlaylistNotFound  = "Playlist Not Found. Is the URL correct?"
	MsgPlaylistForbidden = "Playlist not accessible. This app only supports importing public playlists."
	MsgAlbumNotFound     = "Album not found. Is the URL correct?"
	MsgUnknown           = "Unknown error."
)

// Category is one of the fixed client error categories.
type Category int

const (
	MissingParameter Category = iota
	NotFound
	Forbidden
	UpstreamUnknown
	MalformedUpstreamPayload
)

func (c Category) String() string {
	switch c {
	case MissingParameter:
		return "missing_parameter"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case UpstreamUnknown:
		return "upstream_unknown"
	case MalformedUpstreamPayload:
		return "malformed_upstream_payload"
	default:
		return ""
	}
}

// Outcome is the classified form of a failure: an HTTP status and the message shown to the client.
//
// An empty Message means the response carries no body.
type Outcome struct {
	Category Category
	Status   int
	Message  string
}

// Classify maps any error produced while serving a collection request to an [Outcome].
//
// Errors that match no known sentinel are treated as [UpstreamUnknown].
func Classify(err error) Outcome {
	switch {
	case errors.Is(err, ErrMissingArgument):
		return Outcome{Category: MissingParameter, Status: http.StatusBadRequest}
	case errors.Is(err, ErrPlaylistNotFound):
		return Outcome{Category: NotFound, Status: http.StatusBadRequest, Message: MsgPlaylistNotFound}
	case errors.Is(err, ErrAlbumNotFound):
		return Outcome{Category: NotFound, Status: http.StatusBadRequest, Message: MsgAlbumNotFound}
	case errors.Is(err, ErrPlaylistForbidden):
		return Outcome{Category: Forbidden, Status: http.StatusForbidden, Message: MsgPlaylistForbidden}
	case errors.Is(err, ErrMalformedPayload):
		return Outcome{Category: MalformedUpstreamPayload, Status: http.StatusInternalServerError, Message: MsgUnknown}
	default:
		return Outcome{Category: UpstreamUnknown, Status: http.StatusInternalServerError, Message: MsgUnknown}
	}
}

// ClassifyVideoStatus maps a status code reported by the video platform to a sentinel error.
func ClassifyVideoStatus(status int) error {
	switch status {
	case http.StatusNotFound, http.StatusBadRequest:
		return ErrPlaylistNotFound
	case http.StatusForbidden:
		return ErrPlaylistForbidden
	default:
		return ErrAPIRequest
	}
}

// ClassifyVideoError wraps a failed video platform call with the sentinel for its status.
//
// Errors already carrying [ErrMalformedPayload] or [ErrPageLimitExceeded] are returned as is.
func ClassifyVideoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMalformedPayload) || errors.Is(err, ErrPageLimitExceeded) {
		return err
	}

	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return fmt.Errorf("%w: %v", ClassifyVideoStatus(upstreamErr.StatusCode), err)
	}
	return fmt.Errorf("%w: %v", ErrAPIRequest, err)
}
