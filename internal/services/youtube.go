// YouTube Data API [PlaylistSource] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/songrank/internal/shared"
	"golang.org/x/time/rate"
)

const defaultYTBaseURL string = "https://www.googleapis.com/youtube/v3"

// youtubeErrorResponse is the Google API error envelope.
type youtubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

// youtubePageResponse is the projected playlistItems body.
//
// Items is a pointer so an absent key can be told apart from an empty page.
type youtubePageResponse struct {
	Items         *[]PlaylistItem `json:"items"`
	NextPageToken string          `json:"nextPageToken"`
}

// YouTubeService implements the [PlaylistSource] interface for the YouTube Data API.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// YouTubeOpts contains configuration options for creating a [YouTubeService].
type YouTubeOpts struct {
	BaseURL           string
	APIKey            string
	HTTPClient        *http.Client
	RequestsPerSecond float64 // Zero or less disables pacing
}

// NewYouTubeService creates a new YouTube service instance.
func NewYouTubeService(opts YouTubeOpts) *YouTubeService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYTBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &YouTubeService{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// FetchPage retrieves one page of playlist items.
//
// Calls GET /playlistItems with part, maxResults, playlistId, fields and pageToken.
//
// FetchPage does not wait on the rate limiter; callers pace through [YouTubeService.Wait] first.
func (y *YouTubeService) FetchPage(ctx context.Context, req PageRequest) (*PlaylistPage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, y.pageURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeYouTubeError(resp)
	}

	var body *youtubePageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode playlist page: %v", shared.ErrMalformedPayload, err)
	}
	if body == nil {
		return nil, fmt.Errorf("%w: null playlist page", shared.ErrMalformedPayload)
	}
	if body.Items == nil {
		return nil, fmt.Errorf("%w: missing items", shared.ErrMalformedPayload)
	}

	return &PlaylistPage{Items: *body.Items, NextPageToken: body.NextPageToken}, nil
}

// Wait blocks until the rate limiter allows the next call or ctx is done.
func (y *YouTubeService) Wait(ctx context.Context) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

func (y *YouTubeService) pageURL(req PageRequest) string {
	q := url.Values{}
	if req.Parts != "" {
		q.Set("part", req.Parts)
	}
	if req.MaxResults > 0 {
		q.Set("maxResults", strconv.Itoa(req.MaxResults))
	}
	q.Set("playlistId", req.PlaylistID)
	if req.Fields != "" {
		q.Set("fields", req.Fields)
	}
	if req.PageToken != "" {
		q.Set("pageToken", req.PageToken)
	}
	if y.apiKey != "" {
		q.Set("key", y.apiKey)
	}

	return y.baseURL + "/playlistItems?" + q.Encode()
}

func decodeYouTubeError(resp *http.Response) error {
	upstreamErr := &shared.UpstreamError{Source: "youtube", StatusCode: resp.StatusCode}

	var errResp youtubeErrorResponse
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(body, &errResp); err == nil {
		upstreamErr.Message = errResp.Error.Message
		if len(errResp.Error.Errors) > 0 {
			upstreamErr.Reason = errResp.Error.Errors[0].Reason
		}
	}

	return upstreamErr
}
