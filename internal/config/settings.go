package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	ioutils "github.com/handiism/tunefetch/internal/io"
)

// FileName is the configuration file looked up next to the executable.
const FileName = "config.json"

// ErrNotFound is wrapped by Load when the configuration file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Error is a fatal configuration problem. It is the only error class that
// aborts the process.
type Error struct {
	// Path is the configuration file involved, if any.
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "configuration: " + e.Err.Error()
	}
	return fmt.Sprintf("configuration %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Settings holds all configuration options.
type Settings struct {
	// Transcoder
	FFmpegLocation string `json:"ffmpeg_location" validate:"required"`
	BitrateKbps    int    `json:"bitrate_kbps" validate:"eq=192"`

	// Output directories, relative to the install location unless absolute
	DownloadsDir string `json:"downloads_dir" validate:"required"`
	CoversDir    string `json:"covers_dir" validate:"required"`

	// Candidate lists
	MaxCoverCandidates int `json:"max_cover_candidates" validate:"min=1,max=5"`
	MaxVideoCandidates int `json:"max_video_candidates" validate:"min=1,max=20"`

	// Cover art
	CoverMaxSize int `json:"cover_max_size" validate:"min=0"`

	// File naming
	ASCIIFileNames bool `json:"ascii_file_names"`

	// Cover sources
	ImageSearchEnabled  bool `json:"image_search_enabled"`
	LyricsSearchEnabled bool `json:"lyrics_search_enabled"`

	// Network
	RequestsPerSecond  float64 `json:"requests_per_second" validate:"gt=0"`
	HTTPTimeoutSeconds int     `json:"http_timeout_seconds" validate:"min=1"`

	// Logging
	LogLevel  string `json:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `json:"log_format" validate:"oneof=text json logfmt"`
}

// DefaultSettings returns settings with default values.
//
// FFmpegLocation has no sensible default and is left empty.
func DefaultSettings() *Settings {
	return &Settings{
		BitrateKbps: 192,

		DownloadsDir: "Downloads",
		CoversDir:    "Album Covers",

		MaxCoverCandidates: 5,
		MaxVideoCandidates: 5,

		CoverMaxSize: 1000,

		ASCIIFileNames: false,

		ImageSearchEnabled:  true,
		LyricsSearchEnabled: true,

		RequestsPerSecond:  2,
		HTTPTimeoutSeconds: 60,

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DefaultPath returns config.json in the install directory.
func DefaultPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, FileName), nil
}

// BaseDir returns the directory holding the running executable.
func BaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", &Error{Err: fmt.Errorf("locate executable: %w", err)}
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Load reads settings from a JSON file.
//
// Values missing from the file keep their defaults. A missing file yields
// an *Error wrapping ErrNotFound.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Path: path, Err: fmt.Errorf("%w, please create it (see -init-config)", ErrNotFound)}
		}
		return nil, &Error{Path: path, Err: err}
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks field constraints and that ffmpeg resolves to an executable.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return &Error{Err: fmt.Errorf("invalid settings: %w", err)}
	}
	_, err := s.ResolveFFmpeg()
	return err
}

// ResolveFFmpeg returns the path of the ffmpeg executable.
//
// FFmpegLocation may name the binary itself or a directory containing
// "ffmpeg" ("ffmpeg.exe" on Windows).
func (s *Settings) ResolveFFmpeg() (string, error) {
	loc := strings.TrimSpace(s.FFmpegLocation)
	if loc == "" {
		return "", &Error{Err: errors.New("missing ffmpeg_location, ensure ffmpeg is installed and configured")}
	}

	info, err := os.Stat(loc)
	if err != nil {
		return "", &Error{Err: fmt.Errorf("invalid ffmpeg_location %q: %w", loc, err)}
	}

	candidate := loc
	if info.IsDir() {
		candidate = filepath.Join(loc, ffmpegBinaryName())
	}

	path, err := exec.LookPath(candidate)
	if err != nil {
		return "", &Error{Err: fmt.Errorf("ffmpeg at %q is not an executable: %w", candidate, err)}
	}
	return path, nil
}

// HTTPTimeout returns the configured request timeout.
func (s *Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

// DownloadsPath resolves DownloadsDir against base.
func (s *Settings) DownloadsPath(base string) string {
	return resolveDir(base, s.DownloadsDir)
}

// CoversPath resolves CoversDir against base.
func (s *Settings) CoversPath(base string) string {
	return resolveDir(base, s.CoversDir)
}

// EnsureDirectories creates both output directories if they are missing.
func (s *Settings) EnsureDirectories(base string) error {
	for _, dir := range []string{s.DownloadsPath(base), s.CoversPath(base)} {
		if err := ioutils.EnsureDir(dir); err != nil {
			return &Error{Err: fmt.Errorf("create directory %q: %w", dir, err)}
		}
	}
	return nil
}

func resolveDir(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

func ffmpegBinaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}
