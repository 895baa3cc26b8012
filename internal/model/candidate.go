package model

import (
	"fmt"
	"time"
)

// ImageCandidate is one cover image URL offered for selection.
//
// URL is never empty, and no two candidates of one search share a URL.
// An empty URL can never be downloaded, so merging drops it along with
// exact duplicates.
type ImageCandidate struct {
	URL string
}

// VideoCandidate is one search result from the video platform.
//
// Candidates are kept in provider order; nothing in tunefetch re-ranks them.
type VideoCandidate struct {
	// Title is the video title as shown by the platform.
	Title string

	// PlaybackURL is the watch URL handed to the acquirer.
	PlaybackURL string

	// Channel is the uploader name, if known.
	Channel string

	// Duration is the video length, zero if unknown.
	Duration time.Duration
}

// String renders the candidate the way the selection lists show it.
func (v VideoCandidate) String() string {
	if v.Duration > 0 {
		return fmt.Sprintf("%s [%s] (%s)", v.Title, formatDuration(v.Duration), v.PlaybackURL)
	}
	return fmt.Sprintf("%s (%s)", v.Title, v.PlaybackURL)
}

func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
