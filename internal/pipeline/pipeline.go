package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/handiism/tunefetch/internal/logging"
	"github.com/handiism/tunefetch/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// CoverResolver lists cover candidates; it never fails.
type CoverResolver interface {
	Resolve(ctx context.Context, q model.SearchQuery) []model.ImageCandidate
}

// CoverFetcher downloads a cover candidate to destPath.
type CoverFetcher interface {
	Fetch(ctx context.Context, candidate model.ImageCandidate, destPath string) (*model.CoverImage, error)
}

// VideoLocator lists video candidates; it never fails.
type VideoLocator interface {
	Locate(ctx context.Context, q model.SearchQuery) []model.VideoCandidate
}

// AudioAcquirer produces an MP3 from a playback URL.
type AudioAcquirer interface {
	Acquire(ctx context.Context, playbackURL, outputPath string) (*model.AudioArtifact, error)
}

// AudioTagger writes tags into an MP3 and reports whether the cover was
// embedded.
type AudioTagger interface {
	Tag(path string, rec model.TagRecord) (bool, error)
}

// Components are the collaborators a Pipeline drives.
//
// Covers and Fetcher may be nil, which disables cover art.
type Components struct {
	Covers   CoverResolver
	Fetcher  CoverFetcher
	Locator  VideoLocator
	Acquirer AudioAcquirer
	Tagger   AudioTagger
	Logger   *slog.Logger
}

// Options control where files go.
type Options struct {
	DownloadsDir   string
	CoversDir      string
	ASCIIFileNames bool
}

// Pipeline coordinates one song request at a time.
type Pipeline struct {
	c          Components
	opts       Options
	logger     *slog.Logger
	onProgress func(ProgressEvent)
}

// New creates a Pipeline. onProgress may be nil.
func New(c Components, opts Options, onProgress func(ProgressEvent)) *Pipeline {
	return &Pipeline{
		c:          c,
		opts:       opts,
		logger:     logging.OrDiscard(c.Logger),
		onProgress: onProgress,
	}
}

// AudioPath is where the MP3 for q is written.
func (p *Pipeline) AudioPath(q model.SearchQuery) string {
	return filepath.Join(p.opts.DownloadsDir, q.AudioFileName(p.opts.ASCIIFileNames))
}

// CoverPath is where the cover for q is saved.
func (p *Pipeline) CoverPath(q model.SearchQuery) string {
	return filepath.Join(p.opts.CoversDir, q.CoverFileName(p.opts.ASCIIFileNames))
}

// Run executes the whole request, asking sel for the two choices.
func (p *Pipeline) Run(ctx context.Context, q model.SearchQuery, sel Selector) Result {
	result := Result{Query: q}

	if err := q.Validate(); err != nil {
		p.progress(ProgressEvent{Message: "Song name and artist cannot be empty. Please try again.", Level: LevelError})
		result.Outcome = OutcomeInvalid
		result.Err = err
		return result
	}

	// Cover art never ends the run.
	if candidates := p.ResolveCovers(ctx, q); len(candidates) > 0 {
		choice, err := sel.SelectCover(ctx, candidates)
		var picked *model.ImageCandidate
		if err == nil {
			picked, err = ChooseCover(choice, candidates)
		}
		switch {
		case err != nil:
			p.progress(ProgressEvent{Message: "Invalid choice. Skipping album cover.", Level: LevelWarning})
		case picked != nil:
			result.Cover = p.FetchCover(ctx, q, *picked)
		}
	}

	videos := p.Locate(ctx, q)
	if len(videos) == 0 {
		result.Outcome = OutcomeNoMatch
		return result
	}

	choice, err := sel.SelectVideo(ctx, videos)
	var video *model.VideoCandidate
	if err == nil {
		video, err = ChooseVideo(choice, videos)
	}
	if err != nil {
		p.progress(ProgressEvent{Message: "Invalid selection. Please try again.", Level: LevelWarning})
		if !errors.Is(err, ErrInvalidSelection) {
			err = fmt.Errorf("%w: %v", ErrInvalidSelection, err)
		}
		result.Outcome = OutcomeRetry
		result.Err = err
		return result
	}
	if video == nil {
		result.Outcome = OutcomeExit
		return result
	}
	result.Video = video

	artifact, err := p.Acquire(ctx, q, *video)
	if err != nil {
		result.Outcome = OutcomeAcquisitionFailed
		result.Err = err
		return result
	}
	result.Artifact = artifact

	embedded, err := p.Tag(artifact, q, result.Cover)
	if err != nil {
		result.Outcome = OutcomeTaggingFailed
		result.Err = err
		return result
	}
	if !embedded {
		result.Cover = nil
	}

	p.progress(ProgressEvent{Message: fmt.Sprintf("Done! The file is saved as: %s", artifact.FilePath), Level: LevelSuccess})
	result.Outcome = OutcomeDone
	return result
}

// ResolveCovers lists cover candidates for q. It returns nil when cover
// art is disabled.
func (p *Pipeline) ResolveCovers(ctx context.Context, q model.SearchQuery) []model.ImageCandidate {
	if p.c.Covers == nil || p.c.Fetcher == nil {
		return nil
	}

	p.progress(ProgressEvent{Message: fmt.Sprintf("Searching album covers for %s - %s", q.SongName, q.Artist), Level: LevelVerbose})
	candidates := p.c.Covers.Resolve(ctx, q)
	if len(candidates) == 0 {
		p.progress(ProgressEvent{Message: "No album covers found. Continuing without one.", Level: LevelWarning})
	}
	return candidates
}

// FetchCover downloads candidate to CoverPath(q). Failures are reported
// and yield nil.
func (p *Pipeline) FetchCover(ctx context.Context, q model.SearchQuery, candidate model.ImageCandidate) *model.CoverImage {
	if p.c.Fetcher == nil {
		return nil
	}

	cover, err := p.c.Fetcher.Fetch(ctx, candidate, p.CoverPath(q))
	if err != nil {
		p.logger.Warn("cover download failed", "url", candidate.URL, "err", err)
		p.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading album cover: %v", err), Level: LevelWarning})
		return nil
	}

	p.progress(ProgressEvent{Message: fmt.Sprintf("Album cover saved to %s", cover.Path), Level: LevelInfo})
	return cover
}

// Locate lists video candidates for q.
func (p *Pipeline) Locate(ctx context.Context, q model.SearchQuery) []model.VideoCandidate {
	p.progress(ProgressEvent{Message: fmt.Sprintf("Searching videos for %q", q.VideoSearchText()), Level: LevelVerbose})

	videos := p.c.Locator.Locate(ctx, q)
	if len(videos) == 0 {
		p.progress(ProgressEvent{
			Message: fmt.Sprintf("Could not find any matches for '%s' by '%s'. Please refine your search.", q.SongName, q.Artist),
			Level:   LevelWarning,
		})
	}
	return videos
}

// Acquire downloads and transcodes video to AudioPath(q).
func (p *Pipeline) Acquire(ctx context.Context, q model.SearchQuery, video model.VideoCandidate) (*model.AudioArtifact, error) {
	p.progress(ProgressEvent{Message: "Downloading audio...", Level: LevelInfo})

	artifact, err := p.c.Acquirer.Acquire(ctx, video.PlaybackURL, p.AudioPath(q))
	if err != nil {
		p.logger.Error("acquisition failed", "url", video.PlaybackURL, "err", err)
		p.progress(ProgressEvent{Message: "Failed to download the audio. Skipping tagging.", Level: LevelError})
		return nil, err
	}
	return artifact, nil
}

// Tag writes q's metadata and the optional cover into artifact. It
// reports whether the cover made it into the file.
func (p *Pipeline) Tag(artifact *model.AudioArtifact, q model.SearchQuery, cover *model.CoverImage) (bool, error) {
	p.progress(ProgressEvent{Message: "Tagging MP3 file...", Level: LevelInfo})

	embedded, err := p.c.Tagger.Tag(artifact.FilePath, q.TagRecord(cover))
	if err != nil {
		p.logger.Error("tagging failed", "path", artifact.FilePath, "err", err)
		p.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging MP3 file: %v", err), Level: LevelError})
		return false, err
	}

	switch {
	case embedded:
		p.progress(ProgressEvent{Message: "Album cover successfully embedded!", Level: LevelVerbose})
	case cover != nil:
		p.progress(ProgressEvent{Message: "Album cover could not be embedded.", Level: LevelWarning})
	}
	return embedded, nil
}

func (p *Pipeline) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}
