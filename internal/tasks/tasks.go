package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/songrank/internal/models"
	"github.com/desertthunder/songrank/internal/services"
	"github.com/desertthunder/songrank/internal/shared"
)

const (
	// PlaylistPageSize is the number of items requested per playlist page.
	PlaylistPageSize = 50
	// DefaultMaxPages bounds pagination when no limit is configured.
	DefaultMaxPages = 200

	playlistParts  = "snippet,contentDetails"
	playlistFields = "nextPageToken,items(contentDetails/videoId,snippet/title)"
)

// Collector defines operations for collecting normalized items from upstream sources.
type Collector interface {
	// Playlist collects every item of a video playlist in upstream order.
	Playlist(ctx context.Context, playlistID string, progress chan<- ProgressUpdate) ([]models.VideoItem, error)

	// Album collects every track of an album in track order.
	Album(ctx context.Context, albumURL string, progress chan<- ProgressUpdate) ([]models.AudioTrackItem, error)
}

// CollectionEngine implements [Collector].
//
// Holds no per-request state and is safe for concurrent use.
type CollectionEngine struct {
	playlists   services.PlaylistSource
	albums      services.AlbumSource
	maxPages    int
	callTimeout time.Duration
}

// EngineOpts contains configuration options for creating a [CollectionEngine].
type EngineOpts struct {
	Playlists   services.PlaylistSource
	Albums      services.AlbumSource
	MaxPages    int           // Defaults to DefaultMaxPages
	CallTimeout time.Duration // Per upstream call; zero disables
}

// NewCollectionEngine creates a new CollectionEngine with the provided sources.
func NewCollectionEngine(opts EngineOpts) *CollectionEngine {
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}

	return &CollectionEngine{
		playlists:   opts.Playlists,
		albums:      opts.Albums,
		maxPages:    opts.MaxPages,
		callTimeout: opts.CallTimeout,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *CollectionEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func (e *CollectionEngine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.callTimeout)
}

// Playlist collects every item of a playlist, following continuation cursors until the source reports none.
//
// Pages are fetched one at a time since each cursor is only known once the previous page returns.
func (e *CollectionEngine) Playlist(ctx context.Context, playlistID string, progress chan<- ProgressUpdate) ([]models.VideoItem, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlistID", shared.ErrMissingArgument)
	}
	if e.playlists == nil {
		return nil, fmt.Errorf("%w: playlist source not initialized", shared.ErrServiceUnavailable)
	}

	req := services.PageRequest{
		PlaylistID: playlistID,
		MaxResults: PlaylistPageSize,
		Parts:      playlistParts,
		Fields:     playlistFields,
	}
	items := make([]models.VideoItem, 0, PlaylistPageSize)

	for page := 1; ; page++ {
		if page > e.maxPages {
			return nil, fmt.Errorf("%w: playlist %s has more than %d pages", shared.ErrPageLimitExceeded, playlistID, e.maxPages)
		}

		resp, err := e.fetchPage(ctx, req)
		if err != nil {
			return nil, shared.ClassifyVideoError(fmt.Errorf("page %d: %w", page, err))
		}

		for i, entry := range resp.Items {
			item, err := NormalizeVideo(entry)
			if err != nil {
				return nil, fmt.Errorf("page %d item %d: %w", page, i, err)
			}
			items = append(items, item)
		}

		e.sendProgress(progress, fetchPageUpdate(page, len(resp.Items), len(items)))

		if resp.NextPageToken == "" {
			break
		}
		if resp.NextPageToken == req.PageToken {
			return nil, fmt.Errorf("%w: cursor %q repeated on page %d", shared.ErrPageLimitExceeded, resp.NextPageToken, page)
		}
		req.PageToken = resp.NextPageToken
	}

	return items, nil
}

// fetchPage waits on the source's pacer with ctx, then bounds only the fetch itself by the call timeout.
func (e *CollectionEngine) fetchPage(ctx context.Context, req services.PageRequest) (*services.PlaylistPage, error) {
	if pacer, ok := e.playlists.(services.Pacer); ok {
		if err := pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	resp, err := e.playlists.FetchPage(callCtx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty page response", shared.ErrMalformedPayload)
	}
	return resp, nil
}

// Album collects every track of the album at albumURL.
//
// An album with an empty title is reported as [shared.ErrAlbumNotFound].
func (e *CollectionEngine) Album(ctx context.Context, albumURL string, progress chan<- ProgressUpdate) ([]models.AudioTrackItem, error) {
	if albumURL == "" {
		return nil, fmt.Errorf("%w: albumURL", shared.ErrMissingArgument)
	}
	if e.albums == nil {
		return nil, fmt.Errorf("%w: album source not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchAlbumUpdate(albumURL))

	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	album, err := e.albums.FetchAlbum(callCtx, albumURL)
	if err != nil {
		if errors.Is(err, shared.ErrMalformedPayload) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if album == nil || album.Title == "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrAlbumNotFound, albumURL)
	}

	items := NormalizeAlbum(album)
	e.sendProgress(progress, foundAlbumUpdate(album.Title, len(items)))

	return items, nil
}
