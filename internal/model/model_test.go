package model

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		ascii bool
		want  string
	}{
		{"normal-file", false, "normal-file"},
		{"file:with:colons", false, "file_with_colons"},
		{"file<with>brackets", false, "file_with_brackets"},
		{"AC/DC\\live", false, "AC_DC_live"},
		{"file|with|pipes", false, "file_with_pipes"},
		{"file?with*wildcards", false, "file_with_wildcards"},
		{"file\"with\"quotes", false, "file_with_quotes"},
		{"trailing dots...", false, "trailing dots"},
		{"multiple   spaces", false, "multiple spaces"},
		{"  padded  ", false, "padded"},
		{"...", false, "untitled"},
		{"", false, "untitled"},
		{"Beyoncé", false, "Beyoncé"},
		{"Beyoncé", true, "Beyonce"},
		{"Sigur Rós", true, "Sigur Ros"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input, tt.ascii))
		})
	}
}

func TestSanitizeFileName_CapsLength(t *testing.T) {
	long := strings.Repeat("é", 300)

	got := SanitizeFileName(long, false)

	assert.LessOrEqual(t, len(got), maxFileNameBytes)
	assert.True(t, utf8.ValidString(got), "truncation must keep runes intact")
}

func TestNewSearchQuery_Defaults(t *testing.T) {
	q := NewSearchQuery("  Imagine ", " John Lennon", "", "   ")

	assert.Equal(t, "Imagine", q.SongName)
	assert.Equal(t, "John Lennon", q.Artist)
	assert.Equal(t, DefaultAlbum, q.Album)
	assert.Equal(t, DefaultGenre, q.Genre)
	require.NoError(t, q.Validate())
}

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		song    string
		artist  string
		wantErr bool
	}{
		{"complete", "Imagine", "John Lennon", false},
		{"missing song", " ", "John Lennon", true},
		{"missing artist", "Imagine", "", true},
		{"both missing", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSearchQuery(tt.song, tt.artist, "", "").Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchQuery_ValidateRejectsBlankLiterals(t *testing.T) {
	tests := []struct {
		name string
		q    SearchQuery
	}{
		{"spaces and tab", SearchQuery{SongName: "   ", Artist: "\t"}},
		{"blank song", SearchQuery{SongName: " \n", Artist: "John Lennon"}},
		{"blank artist", SearchQuery{SongName: "Imagine", Artist: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.q.Validate())
		})
	}

	assert.NoError(t, SearchQuery{SongName: " Imagine ", Artist: "John Lennon"}.Validate())
}

func TestSearchQuery_Texts(t *testing.T) {
	q := NewSearchQuery("Imagine", "John Lennon", "Imagine", "Rock")

	assert.Equal(t, "Imagine Imagine John Lennon album cover", q.CoverSearchText())
	assert.Equal(t, "Imagine John Lennon audio", q.VideoSearchText())
	assert.Equal(t, "Imagine - John Lennon.mp3", q.AudioFileName(false))
	assert.Equal(t, "Imagine_John Lennon.jpg", q.CoverFileName(false))
}

func TestSearchQuery_FileNamesAreSanitized(t *testing.T) {
	q := NewSearchQuery("What?", "AC/DC", "", "")

	assert.Equal(t, "What_ - AC_DC.mp3", q.AudioFileName(false))
	assert.Equal(t, "What__AC_DC.jpg", q.CoverFileName(false))
}

func TestSearchQuery_TagRecord(t *testing.T) {
	q := NewSearchQuery("Imagine", "John Lennon", "", "Rock")
	cover := &CoverImage{Path: "/covers/x.jpg", MIMEType: CoverMIMEType}

	rec := q.TagRecord(cover)

	assert.Equal(t, TagRecord{
		Title:  "Imagine",
		Artist: "John Lennon",
		Album:  DefaultAlbum,
		Genre:  "Rock",
		Cover:  cover,
	}, rec)
}

func TestVideoCandidate_String(t *testing.T) {
	v := VideoCandidate{Title: "Song", PlaybackURL: "https://example.com/w"}
	assert.Equal(t, "Song (https://example.com/w)", v.String())

	v.Duration = 3*time.Minute + 7*time.Second
	assert.Equal(t, "Song [3:07] (https://example.com/w)", v.String())

	v.Duration = time.Hour + 2*time.Second
	assert.Equal(t, "Song [1:00:02] (https://example.com/w)", v.String())
}

func TestNewAudioArtifact(t *testing.T) {
	a := NewAudioArtifact("/music/a.mp3")

	assert.Equal(t, "mp3", a.Format)
	assert.Equal(t, 192, a.BitrateKbps)
	assert.Equal(t, "/music/a.mp3", a.FilePath)
}
