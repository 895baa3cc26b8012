package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	// DefaultAlbum is used when the album is left blank.
	DefaultAlbum = "Unknown Album"

	// DefaultGenre is used when the genre is left blank.
	DefaultGenre = "Unknown Genre"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// notblank rejects values that are empty after trimming whitespace.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// SearchQuery is the user input for one pipeline run.
//
// SongName and Artist are mandatory; Album and Genre fall back to
// DefaultAlbum and DefaultGenre when blank.
type SearchQuery struct {
	// SongName is the title of the song to look up.
	SongName string `validate:"notblank"`

	// Artist is the performing artist.
	Artist string `validate:"notblank"`

	// Album is the album title written to the tag and used in the cover search.
	Album string

	// Genre is written to the tag only.
	Genre string
}

// NewSearchQuery trims every field and applies the album/genre defaults.
//
// It does not validate; call Validate before running the pipeline.
func NewSearchQuery(song, artist, album, genre string) SearchQuery {
	q := SearchQuery{
		SongName: strings.TrimSpace(song),
		Artist:   strings.TrimSpace(artist),
		Album:    strings.TrimSpace(album),
		Genre:    strings.TrimSpace(genre),
	}
	if q.Album == "" {
		q.Album = DefaultAlbum
	}
	if q.Genre == "" {
		q.Genre = DefaultGenre
	}
	return q
}

// Validate reports an error if the song name or artist is empty or
// whitespace only.
func (q SearchQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("song name and artist cannot be empty: %w", err)
	}
	return nil
}

// CoverSearchText is the image-search query: "{song} {album} {artist} album cover".
func (q SearchQuery) CoverSearchText() string {
	return fmt.Sprintf("%s %s %s album cover", q.SongName, q.Album, q.Artist)
}

// VideoSearchText is the video-platform query: "{song} {artist} audio".
func (q SearchQuery) VideoSearchText() string {
	return fmt.Sprintf("%s %s audio", q.SongName, q.Artist)
}

// AudioFileName returns "{song} - {artist}.mp3" with each part sanitized.
func (q SearchQuery) AudioFileName(ascii bool) string {
	return SanitizeFileName(q.SongName+" - "+q.Artist, ascii) + ".mp3"
}

// CoverFileName returns "{song}_{artist}.jpg" with each part sanitized.
func (q SearchQuery) CoverFileName(ascii bool) string {
	return SanitizeFileName(q.SongName+"_"+q.Artist, ascii) + ".jpg"
}

// TagRecord builds the metadata record for this query with an optional cover.
func (q SearchQuery) TagRecord(cover *CoverImage) TagRecord {
	return TagRecord{
		Title:  q.SongName,
		Artist: q.Artist,
		Album:  q.Album,
		Genre:  q.Genre,
		Cover:  cover,
	}
}
