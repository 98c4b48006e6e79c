// package formatter provides functions to export collections to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/songrank/internal/models"
	"github.com/desertthunder/songrank/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatText     = "text"
)

// Formats lists every supported format name.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

var (
	videoHeaders = []string{"Type", "Title", "MediaID"}
	audioHeaders = []string{"Type", "Title", "Artist", "CollectionID", "TrackID", "CollectionTitle", "ArtURL"}
)

// VideoURL returns the watch URL for a video id.
func VideoURL(mediaID string) string {
	return "https://www.youtube.com/watch?v=" + mediaID
}

// ExportToJSON encodes the items of a collection as the same array the HTTP surface returns.
func ExportToJSON(c *models.Collection, pretty bool) ([]byte, error) {
	data, err := shared.MarshalJSON(c.Items, pretty)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV converts a collection to CSV with columns chosen by the item type of its first entry.
func ExportToCSV(c *models.Collection) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := videoHeaders
	if len(c.Items) > 0 && c.Items[0].ItemType() == models.AudioTrackItemType {
		headers = audioHeaders
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range c.Items {
		var record []string
		switch v := item.(type) {
		case models.VideoItem:
			record = []string{string(v.Type), v.Title, v.MediaID}
		case models.AudioTrackItem:
			record = []string{string(v.Type), v.Title, v.Artist, v.CollectionID, v.TrackID, v.CollectionTitle, v.ArtURL}
		default:
			return nil, fmt.Errorf("unsupported item type %q", item.ItemType())
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a collection to Markdown, with the album cover when the first track has art.
func ExportToMarkdown(c *models.Collection) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", c.Title))

	if len(c.Items) > 0 {
		if track, ok := c.Items[0].(models.AudioTrackItem); ok && track.ArtURL != "" {
			buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", track.ArtURL))
		}
	}

	buf.WriteString(fmt.Sprintf("**Items**: %d\n\n", len(c.Items)))

	buf.WriteString("## Items\n\n")
	for i, item := range c.Items {
		switch v := item.(type) {
		case models.VideoItem:
			buf.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, escapeMarkdown(v.Title), VideoURL(v.MediaID)))
		case models.AudioTrackItem:
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, escapeMarkdown(v.Artist), escapeMarkdown(v.Title)))
		default:
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, escapeMarkdown(item.ItemTitle())))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a collection to plain text format
func ExportToText(c *models.Collection) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Collection: %s\n", c.Title))
	buf.WriteString(fmt.Sprintf("Items: %d\n\n", len(c.Items)))

	for i, item := range c.Items {
		switch v := item.(type) {
		case models.VideoItem:
			buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, v.Title, v.MediaID))
		case models.AudioTrackItem:
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, v.Artist, v.Title))
		default:
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.ItemTitle()))
		}
	}

	return buf.Bytes(), nil
}

// ValidateFormat reports whether format names a supported export format.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatJSON, "", FormatCSV, FormatMarkdown, "markdown", FormatText, "txt":
		return nil
	default:
		return fmt.Errorf("%w: format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// Export renders c in the named format and writes it to w.
func Export(w io.Writer, format string, c *models.Collection, pretty bool) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)

	switch strings.ToLower(format) {
	case FormatJSON, "":
		data, err = ExportToJSON(c, pretty)
	case FormatCSV:
		data, err = ExportToCSV(c)
	case FormatMarkdown, "markdown":
		data, err = ExportToMarkdown(c)
	default:
		data, err = ExportToText(c)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

var markdownEscaper = strings.NewReplacer("[", `\[`, "]", `\]`, "*", `\*`, "_", `\_`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
