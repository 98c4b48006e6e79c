package tasks

import (
	"fmt"

	"github.com/desertthunder/songrank/internal/models"
	"github.com/desertthunder/songrank/internal/services"
	"github.com/desertthunder/songrank/internal/shared"
)

// NormalizeVideo maps one playlist item to a [models.VideoItem].
//
// Values pass through untouched; only absent keys are rejected with [shared.ErrMalformedPayload].
func NormalizeVideo(entry services.PlaylistItem) (models.VideoItem, error) {
	if entry.Snippet == nil || entry.Snippet.Title == nil {
		return models.VideoItem{}, fmt.Errorf("%w: missing snippet.title", shared.ErrMalformedPayload)
	}
	if entry.ContentDetails == nil || entry.ContentDetails.VideoID == nil {
		return models.VideoItem{}, fmt.Errorf("%w: missing contentDetails.videoId", shared.ErrMalformedPayload)
	}

	return models.NewVideoItem(*entry.Snippet.Title, *entry.ContentDetails.VideoID), nil
}

// NormalizeAlbum maps each track of album to a [models.AudioTrackItem], keeping track order.
func NormalizeAlbum(album *services.Album) []models.AudioTrackItem {
	items := make([]models.AudioTrackItem, 0, len(album.Tracks))
	for _, track := range album.Tracks {
		items = append(items, models.AudioTrackItem{
			Type:            models.AudioTrackItemType,
			Title:           track.Title,
			Artist:          track.Artist,
			CollectionID:    album.ID,
			TrackID:         track.ID,
			CollectionTitle: album.Title,
			ArtURL:          track.ArtURL,
		})
	}
	return items
}
