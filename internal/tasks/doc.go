// Package tasks turns upstream collections into ordered lists of normalized items.
//
// # Core Operations
//
// The [Collector] interface defines two operations:
//
//  1. [Collector.Playlist] : every item of a video playlist
//     - Requests pages of 50 with a fixed field projection
//     - Follows continuation cursors sequentially until none is returned
//     - Concatenates items in page order, hiding page boundaries
//     - Stops with [shared.ErrPageLimitExceeded] after the configured page bound
//
//  2. [Collector.Album] : every track of an album
//     - Single upstream call
//     - An empty album title is the not-found sentinel
//
// # Failure Policy
//
// The first failure ends the operation and no partial list is returned.
// Video platform failures are wrapped with the sentinel for their status (see [shared.ClassifyVideoError]),
// so callers only need [shared.Classify] to produce a client response.
//
// # Progress Reporting
//
// Both operations accept an optional channel for [ProgressUpdate] values. Updates use select with
// default to prevent blocking; pass nil when nobody is listening.
//
// # Implementation
//
// [CollectionEngine] implements [Collector] with dependencies on:
//   - [services.PlaylistSource] : paginated video playlist queries
//   - [services.AlbumSource] : album fetches
package tasks
