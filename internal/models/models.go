package models

// ItemType discriminates the source-specific fields of an [Item].
type ItemType string

const (
	VideoItemType      ItemType = "videoItem"
	AudioTrackItemType ItemType = "audioTrackItem"
)

// Item is a normalized, playable unit regardless of source.
type Item interface {
	ItemType() ItemType
	ItemTitle() string
}

// VideoItem represents one entry of a video playlist.
type VideoItem struct {
	Type    ItemType `json:"type"`
	Title   string   `json:"title"`
	MediaID string   `json:"mediaId"`
}

// NewVideoItem creates a [VideoItem] stamped with [VideoItemType].
func NewVideoItem(title, mediaID string) VideoItem {
	return VideoItem{Type: VideoItemType, Title: title, MediaID: mediaID}
}

func (v VideoItem) ItemType() ItemType { return VideoItemType }
func (v VideoItem) ItemTitle() string  { return v.Title }

// AudioTrackItem represents one track of an album.
//
// CollectionID and CollectionTitle are copied from the parent album.
// ArtURL may be empty.
type AudioTrackItem struct {
	Type            ItemType `json:"type"`
	Title           string   `json:"title"`
	Artist          string   `json:"artist"`
	CollectionID    string   `json:"collectionId"`
	TrackID         string   `json:"trackId"`
	CollectionTitle string   `json:"collectionTitle"`
	ArtURL          string   `json:"artUrl"`
}

func (a AudioTrackItem) ItemType() ItemType { return AudioTrackItemType }
func (a AudioTrackItem) ItemTitle() string  { return a.Title }

// Collection is a normalized list of items with the identifier it was requested by.
//
// Used by export formats that print a heading; the HTTP surface encodes Items alone.
type Collection struct {
	ID    string
	Title string
	Items []Item
}

// NewVideoCollection wraps the items of a video playlist.
func NewVideoCollection(playlistID string, items []VideoItem) *Collection {
	c := &Collection{ID: playlistID, Title: playlistID, Items: make([]Item, 0, len(items))}
	for _, item := range items {
		c.Items = append(c.Items, item)
	}
	return c
}

// NewAlbumCollection wraps the tracks of an album, titled after the album.
func NewAlbumCollection(albumURL string, items []AudioTrackItem) *Collection {
	c := &Collection{ID: albumURL, Title: albumURL, Items: make([]Item, 0, len(items))}
	for _, item := range items {
		c.Items = append(c.Items, item)
	}
	if len(items) > 0 && items[0].CollectionTitle != "" {
		c.Title = items[0].CollectionTitle
	}
	return c
}
