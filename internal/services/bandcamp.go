// Bandcamp [AlbumSource] implementation
//
// Reads the album JSON Bandcamp embeds in the data-tralbum attribute of its album pages.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/songrank/internal/shared"
	"golang.org/x/net/html"
)

const (
	defaultBandcampUserAgent = "songrank/0.1"
	bandcampArtURLFormat     = "https://f4.bcbits.com/img/a%s_10.jpg"
	maxAlbumPageSize         = 8 << 20
)

// bandcampTrAlbum is the subset of the data-tralbum document that gets read.
type bandcampTrAlbum struct {
	ID      json.Number `json:"id"`
	Artist  string      `json:"artist"`
	ArtID   json.Number `json:"art_id"`
	Current struct {
		ID    json.Number `json:"id"`
		Title string      `json:"title"`
		ArtID json.Number `json:"art_id"`
	} `json:"current"`
	TrackInfo []bandcampTrack `json:"trackinfo"`
}

type bandcampTrack struct {
	ID      json.Number `json:"id"`
	TrackID json.Number `json:"track_id"`
	Title   string      `json:"title"`
	Artist  *string     `json:"artist"`
	ArtID   json.Number `json:"art_id"`
}

// BandcampService implements the [AlbumSource] interface by reading public album pages.
type BandcampService struct {
	httpClient *http.Client
	userAgent  string
}

// NewBandcampService creates a new Bandcamp service instance.
func NewBandcampService(client *http.Client, userAgent string) *BandcampService {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = defaultBandcampUserAgent
	}

	return &BandcampService{httpClient: client, userAgent: userAgent}
}

// Name returns the service name.
func (b *BandcampService) Name() string {
	return "Bandcamp"
}

// FetchAlbum downloads the album page at albumURL and extracts its tracks.
//
// A URL that is not absolute http(s), a 404, or a page without album data returns an empty [Album].
func (b *BandcampService) FetchAlbum(ctx context.Context, albumURL string) (*Album, error) {
	u, err := url.Parse(albumURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &Album{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", b.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Album{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &shared.UpstreamError{Source: "bandcamp", StatusCode: resp.StatusCode}
	}

	page, err := scanAlbumPage(io.LimitReader(resp.Body, maxAlbumPageSize))
	if err != nil {
		return nil, err
	}
	if page.tralbum == "" {
		return &Album{}, nil
	}

	var doc bandcampTrAlbum
	if err := json.Unmarshal([]byte(page.tralbum), &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode album data: %v", shared.ErrMalformedPayload, err)
	}

	return albumFromTrAlbum(&doc, page.ogImage), nil
}

type albumPage struct {
	tralbum string
	ogImage string
}

// scanAlbumPage walks the page tokens looking for the data-tralbum attribute and the og:image meta tag.
func scanAlbumPage(r io.Reader) (albumPage, error) {
	var page albumPage
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return page, nil
			}
			return page, fmt.Errorf("failed to read album page: %w", z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if v, ok := attr(tok, "data-tralbum"); ok && page.tralbum == "" {
				page.tralbum = v
			}
			if tok.Data == "meta" {
				if p, _ := attr(tok, "property"); p == "og:image" {
					page.ogImage, _ = attr(tok, "content")
				}
			}
			if page.tralbum != "" && page.ogImage != "" {
				return page, nil
			}
		}
	}
}

func attr(tok html.Token, key string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func albumFromTrAlbum(doc *bandcampTrAlbum, ogImage string) *Album {
	albumID := doc.Current.ID.String()
	if albumID == "" {
		albumID = doc.ID.String()
	}

	artID := doc.ArtID.String()
	if artID == "" {
		artID = doc.Current.ArtID.String()
	}
	albumArt := ogImage
	if artID != "" {
		albumArt = fmt.Sprintf(bandcampArtURLFormat, artID)
	}

	album := &Album{
		ID:     albumID,
		Title:  doc.Current.Title,
		Artist: doc.Artist,
		Tracks: make([]AlbumTrack, 0, len(doc.TrackInfo)),
	}

	for _, t := range doc.TrackInfo {
		track := AlbumTrack{
			ID:     t.TrackID.String(),
			Title:  t.Title,
			Artist: doc.Artist,
			ArtURL: albumArt,
		}
		if track.ID == "" {
			track.ID = t.ID.String()
		}
		if t.Artist != nil && strings.TrimSpace(*t.Artist) != "" {
			track.Artist = *t.Artist
		}
		if t.ArtID.String() != "" {
			track.ArtURL = fmt.Sprintf(bandcampArtURLFormat, t.ArtID.String())
		}
		album.Tracks = append(album.Tracks, track)
	}

	return album
}
