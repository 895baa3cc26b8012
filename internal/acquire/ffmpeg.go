package acquire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg transcodes with an external ffmpeg binary.
type FFmpeg struct {
	path string
}

// NewFFmpeg creates a transcoder running the binary at path.
func NewFFmpeg(path string) *FFmpeg {
	return &FFmpeg{path: path}
}

// Transcode feeds src to ffmpeg on stdin and writes an MP3 to outputPath.
// Video streams are dropped. ffmpeg's stderr is included in the error.
func (f *FFmpeg) Transcode(ctx context.Context, src io.Reader, outputPath string, bitrateKbps int) error {
	cmd := exec.CommandContext(ctx, f.path, transcodeArgs(outputPath, bitrateKbps)...)
	cmd.Stdin = src

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("ffmpeg: %w", err)
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, msg)
	}
	return nil
}

func transcodeArgs(outputPath string, bitrateKbps int) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", "pipe:0",
		"-vn",
		"-codec:a", "libmp3lame",
		"-b:a", strconv.Itoa(bitrateKbps) + "k",
		"-f", "mp3",
		outputPath,
	}
}
