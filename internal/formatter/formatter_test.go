package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/songrank/internal/models"
	"github.com/desertthunder/songrank/internal/shared"
	th "github.com/desertthunder/songrank/internal/testing"
)

func videoCollection() *models.Collection {
	return models.NewVideoCollection("PL123", []models.VideoItem{
		models.NewVideoItem("Song One", "abc"),
		models.NewVideoItem("Song, Two", "def"),
	})
}

func albumCollection() *models.Collection {
	return models.NewAlbumCollection("https://band.bandcamp.com/album/great", []models.AudioTrackItem{
		{
			Type: models.AudioTrackItemType, Title: "Track 1", Artist: "The Band", CollectionID: "1111",
			TrackID: "100", CollectionTitle: "Great Album", ArtURL: "https://f4.bcbits.com/img/a2222_10.jpg",
		},
		{
			Type: models.AudioTrackItemType, Title: "Track 2", Artist: "Guest", CollectionID: "1111",
			TrackID: "101", CollectionTitle: "Great Album",
		},
	})
}

func TestExporters(t *testing.T) {
	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(videoCollection(), false)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		want := `[{"type":"videoItem","title":"Song One","mediaId":"abc"},{"type":"videoItem","title":"Song, Two","mediaId":"def"}]` + "\n"
		if string(data) != want {
			t.Errorf("unexpected JSON\n got: %s\nwant: %s", data, want)
		}
	})

	t.Run("ExportToJSON pretty", func(t *testing.T) {
		data, err := ExportToJSON(videoCollection(), true)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if !strings.Contains(string(data), "\n  {") {
			t.Errorf("expected indented output, got %s", data)
		}
	})

	t.Run("ExportToJSON empty", func(t *testing.T) {
		data, err := ExportToJSON(models.NewVideoCollection("PL123", nil), false)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if string(data) != "[]\n" {
			t.Errorf("expected empty array, got %q", data)
		}
	})

	t.Run("ExportToCSV video", func(t *testing.T) {
		data, err := ExportToCSV(videoCollection())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header and 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Type,Title,MediaID" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if records[2][1] != "Song, Two" || records[2][2] != "def" {
			t.Errorf("unexpected row %v", records[2])
		}
	})

	t.Run("ExportToCSV album", func(t *testing.T) {
		data, err := ExportToCSV(albumCollection())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records[0]) != 7 || records[0][6] != "ArtURL" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if records[2][2] != "Guest" || records[2][6] != "" {
			t.Errorf("unexpected row %v", records[2])
		}
	})

	t.Run("ExportToMarkdown video", func(t *testing.T) {
		data, err := ExportToMarkdown(videoCollection())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "# PL123\n") {
			t.Errorf("missing heading, got: %s", output)
		}
		if !strings.Contains(output, "**Items**: 2") {
			t.Errorf("missing item count")
		}
		if !strings.Contains(output, "1. [Song One](https://www.youtube.com/watch?v=abc)") {
			t.Errorf("missing video link, got: %s", output)
		}
		if strings.Contains(output, "![Cover]") {
			t.Errorf("video collection should have no cover")
		}
	})

	t.Run("ExportToMarkdown album", func(t *testing.T) {
		data, err := ExportToMarkdown(albumCollection())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "# Great Album\n") {
			t.Errorf("expected album title heading, got: %s", output)
		}
		if !strings.Contains(output, "![Cover](https://f4.bcbits.com/img/a2222_10.jpg)") {
			t.Errorf("missing cover image")
		}
		if !strings.Contains(output, "2. Guest - Track 2") {
			t.Errorf("missing second track, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown escapes titles", func(t *testing.T) {
		c := models.NewVideoCollection("PL1", []models.VideoItem{models.NewVideoItem("[Live] *demo*", "x")})
		data, err := ExportToMarkdown(c)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), `\[Live\] \*demo\*`) {
			t.Errorf("title not escaped: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(albumCollection())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Collection: Great Album") {
			t.Errorf("missing title, got: %s", output)
		}
		if !strings.Contains(output, "Items: 2") {
			t.Errorf("missing count")
		}
		if !strings.Contains(output, "1. The Band - Track 1") {
			t.Errorf("missing track, got: %s", output)
		}
	})
}

func TestExport(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "json", format: "json", want: `"mediaId":"abc"`},
		{name: "default json", format: "", want: `"mediaId":"abc"`},
		{name: "csv", format: "csv", want: "Type,Title,MediaID"},
		{name: "markdown", format: "md", want: "# PL123"},
		{name: "markdown long name", format: "markdown", want: "# PL123"},
		{name: "text", format: "text", want: "Collection: PL123"},
		{name: "case insensitive", format: "CSV", want: "Type,Title,MediaID"},
		{name: "unknown", format: "xml", wantErr: shared.ErrInvalidFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Export(&buf, tt.format, videoCollection(), false)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output, got: %s", tt.want, buf.String())
			}
		})
	}

	t.Run("write failure", func(t *testing.T) {
		err := Export(&th.FWriter{}, "text", videoCollection(), false)
		if err == nil {
			t.Error("expected write error")
		}
	})
}
