package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/desertthunder/songrank/internal/shared"
	"github.com/desertthunder/songrank/internal/tasks"
	tu "github.com/desertthunder/songrank/internal/testing"
)

func newTestRouter(playlists *tu.FakePlaylistSource, albums *tu.FakeAlbumSource) *BasicRouter {
	opts := tasks.EngineOpts{}
	if playlists != nil {
		opts.Playlists = playlists
	}
	if albums != nil {
		opts.Albums = albums
	}
	return NewRouter(Opts{Collector: tasks.NewCollectionEngine(opts)})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Err
}

func TestCollectionHandler_Playlist(t *testing.T) {
	t.Run("returns every item in order", func(t *testing.T) {
		source := tu.NewFakePlaylistSource(50, 50, 7)
		router := newTestRouter(source, nil)

		rec := get(t, router, "/getplaylist?playlistID=PL123")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}

		var items []map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if len(items) != 107 {
			t.Fatalf("expected 107 items, got %d", len(items))
		}
		if items[0]["type"] != "videoItem" || items[0]["mediaId"] != "vid-0" || items[106]["title"] != "Video 106" {
			t.Errorf("unexpected items: first %v, last %v", items[0], items[106])
		}
	})

	t.Run("empty playlist", func(t *testing.T) {
		router := newTestRouter(tu.NewFakePlaylistSource(0), nil)

		rec := get(t, router, "/getplaylist?playlistID=PL123")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := rec.Body.String(); got != "[]\n" {
			t.Errorf("expected empty array, got %q", got)
		}
	})

	tests := []struct {
		name       string
		status     int
		wantStatus int
		wantMsg    string
	}{
		{name: "upstream 404", status: http.StatusNotFound, wantStatus: http.StatusBadRequest, wantMsg: shared.MsgPlaylistNotFound},
		{name: "upstream 400", status: http.StatusBadRequest, wantStatus: http.StatusBadRequest, wantMsg: shared.MsgPlaylistNotFound},
		{name: "upstream 403", status: http.StatusForbidden, wantStatus: http.StatusForbidden, wantMsg: shared.MsgPlaylistForbidden},
		{name: "upstream 500", status: http.StatusInternalServerError, wantStatus: http.StatusInternalServerError, wantMsg: shared.MsgUnknown},
		{name: "upstream 503", status: http.StatusServiceUnavailable, wantStatus: http.StatusInternalServerError, wantMsg: shared.MsgUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := tu.NewFakePlaylistSource(50, 50, 7)
			source.Err = &shared.UpstreamError{Source: "youtube", StatusCode: tt.status}
			source.FailPage = 2
			router := newTestRouter(source, nil)

			rec := get(t, router, "/getplaylist?playlistID=PL123")
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if msg := decodeError(t, rec); msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}

	t.Run("malformed payload uses uniform body", func(t *testing.T) {
		source := tu.NewFakePlaylistSource(1)
		source.Pages[0][0].Snippet = nil
		router := newTestRouter(source, nil)

		rec := get(t, router, "/getplaylist?playlistID=PL123")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != shared.MsgUnknown {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		router := newTestRouter(tu.NewFakePlaylistSource(50, 50, 7), nil)

		first := get(t, router, "/getplaylist?playlistID=PL123").Body.String()
		for range 3 {
			if got := get(t, router, "/getplaylist?playlistID=PL123").Body.String(); got != first {
				t.Fatal("response body changed between identical requests")
			}
		}
	})
}

func TestCollectionHandler_Album(t *testing.T) {
	albumURL := "/getbandcampalbum?albumURL=" + url.QueryEscape("https://band.bandcamp.com/album/great")

	t.Run("returns tracks", func(t *testing.T) {
		source := &tu.FakeAlbumSource{Album: tu.SampleAlbum(4)}
		router := newTestRouter(nil, source)

		rec := get(t, router, albumURL)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var items []map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if len(items) != 4 {
			t.Fatalf("expected 4 items, got %d", len(items))
		}
		for i, item := range items {
			if item["type"] != "audioTrackItem" || item["collectionId"] != "1111" || item["collectionTitle"] != "Great Album" {
				t.Errorf("item %d: %v", i, item)
			}
		}
		if got := source.URLs(); len(got) != 1 || got[0] != "https://band.bandcamp.com/album/great" {
			t.Errorf("unexpected upstream urls %v", got)
		}
	})

	t.Run("empty title is not found", func(t *testing.T) {
		router := newTestRouter(nil, &tu.FakeAlbumSource{})

		rec := get(t, router, albumURL)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != shared.MsgAlbumNotFound {
			t.Errorf("unexpected message %q", msg)
		}
	})
}

func TestCollectionHandler_MissingParameter(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "playlist without id", target: "/getplaylist"},
		{name: "playlist with other param", target: "/getplaylist?id=PL123"},
		{name: "album without url", target: "/getbandcampalbum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playlists := tu.NewFakePlaylistSource(5)
			albums := &tu.FakeAlbumSource{Album: tu.SampleAlbum(2)}
			router := newTestRouter(playlists, albums)

			rec := get(t, router, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", rec.Body.String())
			}
			if playlists.Calls() != 0 || albums.Calls() != 0 {
				t.Errorf("expected no upstream calls, got %d playlist and %d album", playlists.Calls(), albums.Calls())
			}
		})
	}
}

func TestCollectionHandler_EmptyParameter(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantMsg string
	}{
		{name: "playlist", target: "/getplaylist?playlistID=", wantMsg: shared.MsgPlaylistNotFound},
		{name: "album", target: "/getbandcampalbum?albumURL=", wantMsg: shared.MsgAlbumNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playlists := tu.NewFakePlaylistSource(5)
			albums := &tu.FakeAlbumSource{Album: tu.SampleAlbum(2)}
			router := newTestRouter(playlists, albums)

			rec := get(t, router, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if msg := decodeError(t, rec); msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
			if playlists.Calls() != 0 || albums.Calls() != 0 {
				t.Errorf("expected no upstream calls, got %d playlist and %d album", playlists.Calls(), albums.Calls())
			}
		})
	}
}

func TestCollectionHandler_Routes(t *testing.T) {
	h := NewCollectionHandler(nil, nil)
	routes := h.Routes()

	want := []string{"GET /getplaylist", "GET /getbandcampalbum"}
	if len(routes) != len(want) {
		t.Fatalf("expected %d routes, got %v", len(want), routes)
	}
	for i := range want {
		if routes[i] != want[i] {
			t.Errorf("route %d = %q, want %q", i, routes[i], want[i])
		}
	}
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := get(t, router, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "songrank" {
		t.Errorf("unexpected body %v", body)
	}
}
