// Package services implements the upstream sources collections are read from.
//
// # Sources
//
// Two narrow interfaces describe what the rest of the module needs from an upstream:
//   - [PlaylistSource] : "fetch page given id + optional cursor + projection"
//   - [AlbumSource] : "fetch album given URL"
//
// # YouTube Implementation
//
// [YouTubeService] calls the playlistItems endpoint of the YouTube Data API v3 with an API key.
// Outbound calls are paced by a [rate.Limiter] shared by every request the service handles;
// the service exposes it as a [Pacer] so callers wait with the request context.
// A page body without an items key, or a null body, is a [shared.ErrMalformedPayload].
// Non-2xx responses are decoded from the Google error envelope into a [shared.UpstreamError].
//
// # Bandcamp Implementation
//
// [BandcampService] downloads the public album page and reads the album JSON embedded in the
// data-tralbum attribute. A missing page or a page without album data yields an [Album] with an
// empty Title, which callers treat as "not found".
//
// # Concurrency
//
// Both services hold only configuration and are safe for concurrent use.
package services
