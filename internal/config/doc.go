// Package config provides configuration management for tunefetch.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation, including resolving the ffmpeg binary
//   - Resolving the output directories against the install location
//
// # Loading from File
//
// A configuration file is mandatory; a missing file is a configuration
// error, not a fallback to defaults:
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    log.Fatal(err) // *config.Error
//	}
//	ffmpeg, err := settings.ResolveFFmpeg()
//
// # Writing a Starter File
//
//	err := config.DefaultSettings().Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - ffmpeg location (required)
//   - Output directories for audio and cover images
//   - Candidate list sizes
//   - Cover art resizing and filename transliteration
//   - Cover source toggles and scraping rate limit
//   - Logging level and format
package config
