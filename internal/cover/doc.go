// Package cover finds and downloads album cover art.
//
// A Resolver queries every enabled Source concurrently and merges their
// URLs into at most five ImageCandidates: image-search results first,
// lyrics-site results after, duplicates removed by exact URL. A source
// that fails contributes nothing; its error is logged and never reaches
// the caller.
//
// # Basic Usage
//
//	client := http.NewClient(60*time.Second, 2)
//	resolver := cover.NewResolver(5, logger,
//	    cover.NewGoogleImages(client),
//	    cover.NewGenius(client),
//	)
//	candidates := resolver.Resolve(ctx, query)
//
// A chosen candidate is turned into embeddable JPEG art by a Fetcher:
//
//	fetcher := cover.NewFetcher(client, ioutils.NewImageService(), 1000)
//	img, err := fetcher.Fetch(ctx, candidates[0], "Album Covers/Imagine_John Lennon.jpg")
package cover
