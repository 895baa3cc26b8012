package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// ErrNoAudioFormat is returned when a video offers no audio-only stream.
var ErrNoAudioFormat = errors.New("no audio-only format available")

// YouTubeResolver resolves watch URLs with the kkdai/youtube client.
type YouTubeResolver struct {
	client *youtube.Client
}

// NewYouTubeResolver creates a resolver. A nil httpClient selects the
// library default. Stream bodies are read through the same client, so its
// Timeout must leave room for a whole download.
func NewYouTubeResolver(httpClient *http.Client) *YouTubeResolver {
	return &YouTubeResolver{
		client: &youtube.Client{HTTPClient: httpClient},
	}
}

// Resolve opens the highest-bitrate audio-only stream of the video.
func (r *YouTubeResolver) Resolve(ctx context.Context, playbackURL string) (*Stream, error) {
	video, err := r.client.GetVideoContext(ctx, playbackURL)
	if err != nil {
		return nil, fmt.Errorf("fetch video info: %w", err)
	}

	format, err := bestAudioFormat(video.Formats)
	if err != nil {
		return nil, err
	}

	body, size, err := r.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}

	return &Stream{Body: body, Size: size, MimeType: format.MimeType}, nil
}

// bestAudioFormat picks the audio/* format with the highest bitrate.
// On a tie the earlier format wins.
func bestAudioFormat(formats youtube.FormatList) (*youtube.Format, error) {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		if best == nil || bitrateOf(f) > bitrateOf(best) {
			best = f
		}
	}
	if best == nil {
		return nil, ErrNoAudioFormat
	}
	return best, nil
}

func bitrateOf(f *youtube.Format) int {
	if f.Bitrate > 0 {
		return f.Bitrate
	}
	return f.AverageBitrate
}
