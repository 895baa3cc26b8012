package locate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/handiism/tunefetch/internal/logging"
	"github.com/handiism/tunefetch/internal/model"
)

const (
	// YouTubeSearchURL is the results page endpoint.
	YouTubeSearchURL = "https://www.youtube.com/results"

	// WatchURLPrefix turns a video id into a playback URL.
	WatchURLPrefix = "https://www.youtube.com/watch?v="

	initialDataMarker = "var ytInitialData = "
	videosOnlyFilter  = "EgIQAQ%3D%3D"
)

var (
	errNoInitialData  = errors.New("ytInitialData not found in search page")
	errBadInitialData = errors.New("ytInitialData is not a complete JSON object")
)

// Locator returns video candidates for a query.
type Locator interface {
	Locate(ctx context.Context, q model.SearchQuery) []model.VideoCandidate
}

// PageGetter fetches an HTML page.
type PageGetter interface {
	GetString(ctx context.Context, url string) (string, error)
}

type textRuns struct {
	Runs []struct {
		Text string `json:"text"`
	} `json:"runs"`
	SimpleText string `json:"simpleText"`
}

func (t textRuns) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

type videoRenderer struct {
	VideoID    string   `json:"videoId"`
	Title      textRuns `json:"title"`
	OwnerText  textRuns `json:"ownerText"`
	LengthText textRuns `json:"lengthText"`
}

// YouTube locates videos by scraping the search results page.
type YouTube struct {
	client PageGetter
	limit  int
	logger *slog.Logger

	// BaseURL is the results endpoint; tests point it at a local server.
	BaseURL string
}

// NewYouTube creates a locator returning at most limit candidates.
func NewYouTube(client PageGetter, limit int, logger *slog.Logger) *YouTube {
	if limit <= 0 {
		limit = 5
	}
	return &YouTube{
		client:  client,
		limit:   limit,
		logger:  logging.OrDiscard(logger),
		BaseURL: YouTubeSearchURL,
	}
}

// Locate searches for "{song} {artist} audio" and returns video results
// in provider order. It never fails; errors produce an empty list.
func (y *YouTube) Locate(ctx context.Context, q model.SearchQuery) []model.VideoCandidate {
	searchURL := y.BaseURL + "?search_query=" + url.QueryEscape(q.VideoSearchText()) + "&sp=" + videosOnlyFilter

	page, err := y.client.GetString(ctx, searchURL)
	if err != nil {
		y.logger.Warn("video search failed", "query", q.VideoSearchText(), "err", err)
		return nil
	}

	videos, err := parseSearchPage(page, y.limit)
	if err != nil {
		y.logger.Warn("video search page unreadable", "query", q.VideoSearchText(), "err", err)
		return nil
	}

	y.logger.Debug("video search done", "query", q.VideoSearchText(), "count", len(videos))
	return videos
}

// parseSearchPage extracts up to limit videos from a results page.
func parseSearchPage(page string, limit int) ([]model.VideoCandidate, error) {
	idx := strings.Index(page, initialDataMarker)
	if idx < 0 {
		return nil, errNoInitialData
	}

	data := extractJSONObject([]byte(page[idx+len(initialDataMarker):]))
	if data == nil {
		return nil, errBadInitialData
	}

	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	return collectVideos(root, limit), nil
}

// extractJSONObject returns the JSON object starting at b[0] by tracking
// brace depth outside of string literals.
func extractJSONObject(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i, c := range b {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// collectVideos walks the document depth-first and converts every
// videoRenderer with an id, stopping at limit.
func collectVideos(root json.RawMessage, limit int) []model.VideoCandidate {
	var videos []model.VideoCandidate

	var walk func(v json.RawMessage)
	walk = func(v json.RawMessage) {
		if len(videos) >= limit {
			return
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(v, &obj); err == nil {
			if raw, ok := obj["videoRenderer"]; ok {
				var vr videoRenderer
				if err := json.Unmarshal(raw, &vr); err == nil && vr.VideoID != "" {
					videos = append(videos, vr.candidate())
					return
				}
			}
			// Sibling keys are visited sorted so results are stable.
			for _, key := range slices.Sorted(maps.Keys(obj)) {
				walk(obj[key])
			}
			return
		}

		var arr []json.RawMessage
		if err := json.Unmarshal(v, &arr); err == nil {
			for _, item := range arr {
				walk(item)
			}
		}
	}
	walk(root)

	return videos
}

func (vr videoRenderer) candidate() model.VideoCandidate {
	return model.VideoCandidate{
		Title:       vr.Title.String(),
		PlaybackURL: WatchURLPrefix + vr.VideoID,
		Channel:     vr.OwnerText.String(),
		Duration:    parseClock(vr.LengthText.String()),
	}
}

// parseClock parses "m:ss" or "h:mm:ss"; anything else is zero.
func parseClock(s string) time.Duration {
	if s == "" {
		return 0
	}
	var total int
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second
}
