package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apphttp "github.com/handiism/tunefetch/internal/http"
	ioutils "github.com/handiism/tunefetch/internal/io"
	"github.com/handiism/tunefetch/internal/logging"
	"github.com/handiism/tunefetch/internal/model"
)

// Stage names the acquisition step that failed.
type Stage string

const (
	StageResolve   Stage = "resolve"
	StageTranscode Stage = "transcode"
	StageVerify    Stage = "verify"
)

// ErrEmptyOutput is reported when the transcoder exits cleanly but leaves
// no audio behind.
var ErrEmptyOutput = errors.New("transcoder produced no output")

// Error is an acquisition failure.
type Error struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("acquire %s (%s): %v", e.URL, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Stream is an open audio stream.
type Stream struct {
	Body io.ReadCloser

	// Size is the content length in bytes, zero or negative if unknown.
	Size int64

	// MimeType is the source container, e.g. `audio/webm; codecs="opus"`.
	MimeType string
}

// StreamResolver opens the best audio stream for a playback URL.
type StreamResolver interface {
	Resolve(ctx context.Context, playbackURL string) (*Stream, error)
}

// Transcoder converts src into an MP3 file at outputPath, replacing any
// existing file.
type Transcoder interface {
	Transcode(ctx context.Context, src io.Reader, outputPath string, bitrateKbps int) error
}

// Acquirer downloads and transcodes audio.
type Acquirer struct {
	resolver   StreamResolver
	transcoder Transcoder
	logger     *slog.Logger

	// OnProgress, if set, is called as stream bytes are consumed.
	OnProgress func(read, total int64)
}

// NewAcquirer creates an Acquirer.
func NewAcquirer(resolver StreamResolver, transcoder Transcoder, logger *slog.Logger) *Acquirer {
	return &Acquirer{
		resolver:   resolver,
		transcoder: transcoder,
		logger:     logging.OrDiscard(logger),
	}
}

// Acquire downloads the audio behind playbackURL and writes a 192 kbps MP3
// to outputPath.
//
// On success the returned artifact describes a non-empty file. On failure
// the error is an *Error and outputPath does not exist.
func (a *Acquirer) Acquire(ctx context.Context, playbackURL, outputPath string) (artifact *model.AudioArtifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			os.Remove(outputPath)
			artifact = nil
			err = &Error{Stage: StageTranscode, URL: playbackURL, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	stream, err := a.resolver.Resolve(ctx, playbackURL)
	if err != nil {
		return nil, &Error{Stage: StageResolve, URL: playbackURL, Err: err}
	}
	defer stream.Body.Close()

	a.logger.Debug("audio stream resolved", "url", playbackURL, "mime", stream.MimeType, "size", stream.Size)

	if err := ioutils.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return nil, &Error{Stage: StageTranscode, URL: playbackURL, Err: err}
	}

	var src io.Reader = stream.Body
	if a.OnProgress != nil {
		src = io.TeeReader(stream.Body, &apphttp.ProgressWriter{
			Writer:   io.Discard,
			Total:    stream.Size,
			OnUpdate: a.OnProgress,
		})
	}

	if err := a.transcoder.Transcode(ctx, src, outputPath, model.AudioBitrateKbps); err != nil {
		os.Remove(outputPath)
		return nil, &Error{Stage: StageTranscode, URL: playbackURL, Err: err}
	}

	ok, err := ioutils.NonEmptyFile(outputPath)
	if err == nil && !ok {
		err = ErrEmptyOutput
	}
	if err != nil {
		os.Remove(outputPath)
		return nil, &Error{Stage: StageVerify, URL: playbackURL, Err: err}
	}

	a.logger.Info("audio acquired", "path", outputPath)
	return model.NewAudioArtifact(outputPath), nil
}
