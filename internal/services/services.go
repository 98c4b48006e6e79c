// package services defines the upstream sources that collections are read from
//
// YouTube (Data API v3), Bandcamp (album pages)
package services

import (
	"context"
)

// PlaylistSource is a paginated collection query against the video platform.
type PlaylistSource interface {
	// FetchPage retrieves one page of a playlist.
	//
	// Returns a *shared.UpstreamError when the upstream answers with a non-2xx status.
	FetchPage(ctx context.Context, req PageRequest) (*PlaylistPage, error)

	// Name returns the name of the source (e.g., "YouTube")
	Name() string
}

// AlbumSource is a single-call album fetch against the music platform.
type AlbumSource interface {
	// FetchAlbum retrieves an album and its tracks by URL.
	//
	// An album with an empty Title means the album was not found.
	FetchAlbum(ctx context.Context, albumURL string) (*Album, error)

	// Name returns the name of the source (e.g., "Bandcamp")
	Name() string
}

// Pacer is implemented by sources that throttle their own outbound calls.
//
// Wait is called with the request context before each fetch, outside any per-call timeout.
type Pacer interface {
	Wait(ctx context.Context) error
}

// PageRequest describes one page query. An empty PageToken requests the first page.
type PageRequest struct {
	PlaylistID string
	PageToken  string
	MaxResults int
	Parts      string // Resource parts, e.g. "snippet,contentDetails"
	Fields     string // Partial response projection
}

// PlaylistPage is one page of playlist items plus the cursor for the next page.
type PlaylistPage struct {
	Items         []PlaylistItem `json:"items"`
	NextPageToken string         `json:"nextPageToken"`
}

// PlaylistItem is the projected playlist item record.
//
// Pointer fields are nil when the key is absent from the payload.
type PlaylistItem struct {
	Snippet        *PlaylistItemSnippet        `json:"snippet"`
	ContentDetails *PlaylistItemContentDetails `json:"contentDetails"`
}

// PlaylistItemSnippet holds the projected snippet fields.
type PlaylistItemSnippet struct {
	Title *string `json:"title"`
}

// PlaylistItemContentDetails holds the projected contentDetails fields.
type PlaylistItemContentDetails struct {
	VideoID *string `json:"videoId"`
}

// Album is the result of an album fetch.
type Album struct {
	ID     string
	Title  string
	Artist string
	Tracks []AlbumTrack
}

// AlbumTrack is a single track record of an [Album].
type AlbumTrack struct {
	ID     string
	Title  string
	Artist string
	ArtURL string
}
