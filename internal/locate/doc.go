// Package locate finds candidate videos for a song.
//
// The YouTube locator requests the search results page with the
// videos-only filter and reads the ytInitialData blob embedded in it.
// Results keep the platform's order. Any failure yields an empty list;
// "nothing found" and "search failed" look the same to the caller, and
// the cause is logged.
//
//	loc := locate.NewYouTube(client, 5, logger)
//	videos := loc.Locate(ctx, query)
package locate
