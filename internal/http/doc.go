// Package http provides the HTTP client shared by the cover sources, the
// media locator and the cover downloader.
//
// The Client in this package handles:
//   - A browser User-Agent, since the scraped endpoints reject bot agents
//   - Client-side rate limiting of outgoing requests
//   - Typed errors for non-200 responses
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(60*time.Second, 2)
//
//	// Fetch an HTML page
//	html, err := client.GetString(ctx, "https://www.google.com/search?tbm=isch&q=...")
//
//	// Decode a JSON API response
//	var resp searchResponse
//	err = client.GetJSON(ctx, "https://genius.com/api/search?q=...", &resp)
//
// # Progress Tracking
//
// The ProgressWriter type wraps any io.Writer for progress tracking; the
// acquirer uses it while piping an audio stream into the transcoder:
//
//	pw := &http.ProgressWriter{
//	    Writer:   stdin,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
