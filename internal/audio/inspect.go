package audio

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// TagSummary is what a reader sees in a tagged file.
type TagSummary struct {
	Format string
	Title  string
	Artist string
	Album  string
	Genre  string

	// CoverMIMEType is empty when no picture is embedded.
	CoverMIMEType string
	CoverBytes    int
}

// HasCover reports whether a picture is embedded.
func (s TagSummary) HasCover() bool { return s.CoverBytes > 0 }

func (s TagSummary) String() string {
	cover := "no cover"
	if s.HasCover() {
		cover = fmt.Sprintf("cover %s, %d bytes", s.CoverMIMEType, s.CoverBytes)
	}
	return fmt.Sprintf("%s - %s [%s] (%s) %s, %s", s.Title, s.Artist, s.Album, s.Genre, s.Format, cover)
}

// Inspect reads the tags of the file at path.
func Inspect(path string) (TagSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return TagSummary{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return TagSummary{}, fmt.Errorf("failed to read tags: %w", err)
	}

	s := TagSummary{
		Format: string(m.Format()),
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Genre:  m.Genre(),
	}
	if pic := m.Picture(); pic != nil {
		s.CoverMIMEType = pic.MIMEType
		s.CoverBytes = len(pic.Data)
	}
	return s, nil
}
