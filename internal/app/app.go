// Package app wires settings into a ready-to-run pipeline for the
// command-line and TUI front-ends.
package app

import (
	"io"
	"log/slog"

	"github.com/handiism/tunefetch/internal/acquire"
	"github.com/handiism/tunefetch/internal/audio"
	"github.com/handiism/tunefetch/internal/config"
	"github.com/handiism/tunefetch/internal/cover"
	"github.com/handiism/tunefetch/internal/http"
	ioutils "github.com/handiism/tunefetch/internal/io"
	"github.com/handiism/tunefetch/internal/locate"
	"github.com/handiism/tunefetch/internal/logging"
	"github.com/handiism/tunefetch/internal/pipeline"
)

// App is a configured tunefetch instance.
type App struct {
	Settings *config.Settings
	BaseDir  string
	Logger   *slog.Logger
	Pipeline *pipeline.Pipeline

	// Acquirer is exposed so front-ends can attach a byte progress callback.
	Acquirer *acquire.Acquirer
}

// LoadSettings reads and validates the configuration at path, or at the
// default location next to the executable when path is empty. All
// failures are *config.Error.
func LoadSettings(path string) (*config.Settings, error) {
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// New builds every component from settings. Output directories are
// resolved against baseDir and created. Logs go to logOut; verbose forces
// debug level.
func New(settings *config.Settings, baseDir string, logOut io.Writer, verbose bool, onProgress func(pipeline.ProgressEvent)) (*App, error) {
	level := settings.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(logOut, level, settings.LogFormat)

	ffmpegPath, err := settings.ResolveFFmpeg()
	if err != nil {
		return nil, err
	}
	if err := settings.EnsureDirectories(baseDir); err != nil {
		return nil, err
	}

	client := http.NewClient(settings.HTTPTimeout(), settings.RequestsPerSecond)

	var sources []cover.Source
	if settings.ImageSearchEnabled {
		sources = append(sources, cover.NewGoogleImages(client))
	}
	if settings.LyricsSearchEnabled {
		sources = append(sources, cover.NewGenius(client))
	}

	components := pipeline.Components{
		Locator: locate.NewYouTube(client, settings.MaxVideoCandidates, logger),
		Tagger:  audio.NewTagger(logger),
		Logger:  logger,
	}
	if len(sources) > 0 {
		components.Covers = cover.NewResolver(settings.MaxCoverCandidates, logger, sources...)
		components.Fetcher = cover.NewFetcher(client, ioutils.NewImageService(), settings.CoverMaxSize)
	}

	// Streams can take longer than one page request, so the stream client
	// has no overall timeout and relies on the context instead.
	acquirer := acquire.NewAcquirer(
		acquire.NewYouTubeResolver(client.StreamingClient()),
		acquire.NewFFmpeg(ffmpegPath),
		logger,
	)
	components.Acquirer = acquirer

	p := pipeline.New(components, pipeline.Options{
		DownloadsDir:   settings.DownloadsPath(baseDir),
		CoversDir:      settings.CoversPath(baseDir),
		ASCIIFileNames: settings.ASCIIFileNames,
	}, onProgress)

	logger.Debug("tunefetch ready",
		"ffmpeg", ffmpegPath,
		"downloads", settings.DownloadsPath(baseDir),
		"covers", settings.CoversPath(baseDir),
		"cover_sources", len(sources))

	return &App{
		Settings: settings,
		BaseDir:  baseDir,
		Logger:   logger,
		Pipeline: p,
		Acquirer: acquirer,
	}, nil
}
