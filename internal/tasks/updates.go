package tasks

import "fmt"

// ProgressUpdate represents a progress event during a collection operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Items collected so far
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchPage Phase = iota
	FetchAlbum
	FoundAlbum
)

func (p Phase) String() string {
	switch p {
	case FetchPage:
		return "fetch_page"
	case FetchAlbum:
		return "fetch_album"
	case FoundAlbum:
		return "found_album"
	default:
		return ""
	}
}

func fetchPageUpdate(page, pageItems, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    page,
		Total:   total,
		Message: fmt.Sprintf("Fetched page %d (%d items, %d total)", page, pageItems, total),
	}
}

func fetchAlbumUpdate(albumURL string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAlbum,
		Step:    1,
		Message: fmt.Sprintf("Fetching album %s...", albumURL),
	}
}

func foundAlbumUpdate(title string, tracks int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FoundAlbum,
		Step:    1,
		Total:   tracks,
		Message: fmt.Sprintf("Found album: %s (%d tracks)", title, tracks),
	}
}
