// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/songrank/internal/services"
)

// FakePlaylistSource is a test double for [services.PlaylistSource] serving fixed pages.
//
// Page i is answered for the cursor returned by page i-1; the last page carries no cursor.
type FakePlaylistSource struct {
	Pages    [][]services.PlaylistItem
	Err      error // Returned instead of the page at FailPage
	FailPage int   // 1-based page number that fails when Err is set
	Endless  bool  // Always return a fresh cursor

	mu       sync.Mutex
	calls    int
	requests []services.PageRequest
}

// NewFakePlaylistSource builds a source with pages of the given sizes.
//
// Item n (0-based across all pages) has title "Video n" and video id "vid-n".
func NewFakePlaylistSource(sizes ...int) *FakePlaylistSource {
	pages := make([][]services.PlaylistItem, len(sizes))
	n := 0
	for i, size := range sizes {
		page := make([]services.PlaylistItem, size)
		for j := range page {
			page[j] = VideoEntry(fmt.Sprintf("Video %d", n), fmt.Sprintf("vid-%d", n))
			n++
		}
		pages[i] = page
	}
	return &FakePlaylistSource{Pages: pages}
}

func (f *FakePlaylistSource) Name() string { return "fake-playlists" }

func (f *FakePlaylistSource) FetchPage(ctx context.Context, req services.PageRequest) (*services.PlaylistPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.requests = append(f.requests, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil && f.calls == f.FailPage {
		return nil, f.Err
	}
	if f.Endless {
		return &services.PlaylistPage{NextPageToken: fmt.Sprintf("page-%d", f.calls+1)}, nil
	}

	index := 0
	if req.PageToken != "" {
		if _, err := fmt.Sscanf(req.PageToken, "page-%d", &index); err != nil {
			return nil, fmt.Errorf("unexpected page token %q", req.PageToken)
		}
	}
	if index >= len(f.Pages) {
		return &services.PlaylistPage{}, nil
	}

	page := &services.PlaylistPage{Items: f.Pages[index]}
	if index+1 < len(f.Pages) {
		page.NextPageToken = fmt.Sprintf("page-%d", index+1)
	}
	return page, nil
}

// Calls returns the number of FetchPage invocations.
func (f *FakePlaylistSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Requests returns a copy of every request received.
func (f *FakePlaylistSource) Requests() []services.PageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]services.PageRequest(nil), f.requests...)
}

// VideoEntry builds a fully populated playlist item.
func VideoEntry(title, videoID string) services.PlaylistItem {
	return services.PlaylistItem{
		Snippet:        &services.PlaylistItemSnippet{Title: &title},
		ContentDetails: &services.PlaylistItemContentDetails{VideoID: &videoID},
	}
}

// FakeAlbumSource is a test double for [services.AlbumSource].
type FakeAlbumSource struct {
	Album *services.Album
	Err   error

	mu    sync.Mutex
	calls int
	urls  []string
}

func (f *FakeAlbumSource) Name() string { return "fake-albums" }

func (f *FakeAlbumSource) FetchAlbum(ctx context.Context, albumURL string) (*services.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.urls = append(f.urls, albumURL)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Album == nil {
		return &services.Album{}, nil
	}
	return f.Album, nil
}

// Calls returns the number of FetchAlbum invocations.
func (f *FakeAlbumSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// URLs returns every album URL requested.
func (f *FakeAlbumSource) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// SampleAlbum returns an album with n tracks.
func SampleAlbum(n int) *services.Album {
	album := &services.Album{ID: "1111", Title: "Great Album", Artist: "The Band"}
	for i := range n {
		album.Tracks = append(album.Tracks, services.AlbumTrack{
			ID:     fmt.Sprintf("%d", 100+i),
			Title:  fmt.Sprintf("Track %d", i+1),
			Artist: "The Band",
			ArtURL: "https://f4.bcbits.com/img/a2222_10.jpg",
		})
	}
	return album
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
