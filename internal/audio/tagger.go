package audio

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bogem/id3v2"

	ioutils "github.com/handiism/tunefetch/internal/io"
	"github.com/handiism/tunefetch/internal/logging"
	"github.com/handiism/tunefetch/internal/model"
)

// id3Version is the tag version written to every file.
const id3Version = 3

// TagError reports that tags could not be written. The audio file is left
// on disk untouched or with its previous tags.
type TagError struct {
	Path string
	Err  error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("tag %s: %v", e.Path, e.Err)
}

func (e *TagError) Unwrap() error { return e.Err }

// Tagger writes ID3 tags to MP3 files.
//
// Tagger uses the id3v2 library to modify MP3 file metadata including:
//   - Title (TIT2), Artist (TPE1), Album (TALB), Genre (TCON)
//   - Cover Art (APIC, front cover)
//
// Example:
//
//	tagger := NewTagger(logger)
//
//	// After transcoding
//	if _, err := tagger.Tag(artifact.FilePath, query.TagRecord(cover)); err != nil {
//	    logger.Error("tagging failed", "err", err)
//	}
type Tagger struct {
	logger *slog.Logger
}

// NewTagger creates a new Tagger. A nil logger discards warnings.
func NewTagger(logger *slog.Logger) *Tagger {
	return &Tagger{logger: logging.OrDiscard(logger)}
}

// Tag writes rec into the MP3 at path and saves it as ID3v2.3. It reports
// whether rec.Cover was embedded.
//
// This method:
//  1. Opens the file, parsing any existing tag
//  2. Sets title, artist, album and genre unconditionally
//  3. Replaces any attached pictures with rec.Cover, if one is usable
//  4. Saves the tag
//
// A cover that cannot be read is logged and skipped; the text frames are
// still written. Any other failure is returned as a *TagError.
func (t *Tagger) Tag(path string, rec model.TagRecord) (bool, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return false, &TagError{Path: path, Err: err}
	}
	defer tag.Close()

	// SetVersion resets the default encoding to ISO-8859-1. v2.3 has no
	// UTF-8, so text goes out as UTF-16.
	tag.SetVersion(id3Version)
	tag.SetDefaultEncoding(id3v2.EncodingUTF16)

	tag.SetTitle(rec.Title)
	tag.SetArtist(rec.Artist)
	tag.SetAlbum(rec.Album)
	tag.SetGenre(rec.Genre)

	embedded := false
	if rec.Cover != nil {
		artwork, err := coverData(rec.Cover)
		if err != nil {
			t.logger.Warn("cover not embedded", "path", path, "err", err)
		} else {
			t.updateArtwork(tag, artwork, rec.Cover.MIMEType)
			embedded = true
		}
	}

	if err := tag.Save(); err != nil {
		return false, &TagError{Path: path, Err: err}
	}
	return embedded, nil
}

// coverData returns the cover bytes. A cover with a Path is only usable
// while that file exists; Data is preferred over re-reading it.
func coverData(cover *model.CoverImage) ([]byte, error) {
	if cover.Path == "" {
		if len(cover.Data) == 0 {
			return nil, fmt.Errorf("cover has neither data nor path")
		}
		return cover.Data, nil
	}
	if !ioutils.FileExists(cover.Path) {
		return nil, fmt.Errorf("cover file %s not found", cover.Path)
	}
	if len(cover.Data) > 0 {
		return cover.Data, nil
	}
	data, err := os.ReadFile(cover.Path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("cover file %s is empty", cover.Path)
	}
	return data, nil
}

// updateArtwork embeds cover art as the only attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte, mimeType string) {
	if mimeType == "" {
		mimeType = model.CoverMIMEType
	}

	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    tag.DefaultEncoding(),
		MimeType:    mimeType,
		PictureType: id3v2.PTFrontCover,
		Description: "Front cover",
		Picture:     artwork,
	})
}
