package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songrank/internal/shared"
	"github.com/desertthunder/songrank/internal/tasks"
)

// endpoint binds a path and its identifying query parameter to a collection operation.
//
// notFound is reported for a parameter that is present but empty.
type endpoint struct {
	path     string
	param    string
	notFound error
	fetch    func(ctx context.Context, value string) (any, error)
}

// CollectionHandler serves every collection endpoint through one pipeline:
// validate the identifying parameter, fetch and normalize, classify failures, write JSON.
type CollectionHandler struct {
	endpoints []endpoint
	logger    *log.Logger
}

// NewCollectionHandler creates a [CollectionHandler] backed by collector.
func NewCollectionHandler(collector tasks.Collector, logger *log.Logger) *CollectionHandler {
	return &CollectionHandler{
		logger: logger,
		endpoints: []endpoint{
			{
				path:     "/getplaylist",
				param:    "playlistID",
				notFound: shared.ErrPlaylistNotFound,
				fetch: func(ctx context.Context, id string) (any, error) {
					return collector.Playlist(ctx, id, nil)
				},
			},
			{
				path:     "/getbandcampalbum",
				param:    "albumURL",
				notFound: shared.ErrAlbumNotFound,
				fetch: func(ctx context.Context, albumURL string) (any, error) {
					return collector.Album(ctx, albumURL, nil)
				},
			},
		},
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CollectionHandler) Routes() []string {
	routes := make([]string, 0, len(h.endpoints))
	for _, ep := range h.endpoints {
		routes = append(routes, http.MethodGet+" "+ep.path)
	}
	return routes
}

func (h *CollectionHandler) lookup(path string) (endpoint, bool) {
	for _, ep := range h.endpoints {
		if ep.path == path {
			return ep, true
		}
	}
	return endpoint{}, false
}

// ServeHTTP dispatches the request to the endpoint registered for its path.
func (h *CollectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ep, ok := h.lookup(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	values, ok := r.URL.Query()[ep.param]
	if !ok {
		writeError(w, r, h.logger, fmt.Errorf("%w: %s", shared.ErrMissingArgument, ep.param))
		return
	}
	value := values[0]
	if value == "" {
		writeError(w, r, h.logger, fmt.Errorf("%w: empty %s", ep.notFound, ep.param))
		return
	}

	items, err := ep.fetch(r.Context(), value)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HealthHandler reports liveness.
type HealthHandler struct {
	service string
}

func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Routes() []string {
	return []string{"GET /health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": h.service})
}
