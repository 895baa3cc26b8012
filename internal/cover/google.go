package cover

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/handiism/tunefetch/internal/model"
)

// GoogleImagesURL is the image search endpoint.
const GoogleImagesURL = "https://www.google.com/search"

// GoogleImages scrapes the image search results page.
type GoogleImages struct {
	client Getter

	// BaseURL is the search endpoint; tests point it at a local server.
	BaseURL string
}

// NewGoogleImages creates an image search source.
func NewGoogleImages(client Getter) *GoogleImages {
	return &GoogleImages{client: client, BaseURL: GoogleImagesURL}
}

func (g *GoogleImages) Name() string { return "google-images" }

// Search requests "{song} {album} {artist} album cover" and returns the
// first image sources on the page that are absolute http(s) URLs.
func (g *GoogleImages) Search(ctx context.Context, q model.SearchQuery) ([]string, error) {
	searchURL := g.BaseURL + "?tbm=isch&q=" + url.QueryEscape(q.CoverSearchText())

	html, err := g.client.GetString(ctx, searchURL)
	if err != nil {
		return nil, &SourceError{Source: g.Name(), Err: err}
	}

	urls, err := parseImageResults(html, PerSourceLimit)
	if err != nil {
		return nil, &SourceError{Source: g.Name(), Err: err}
	}
	return urls, nil
}

// parseImageResults collects img src attributes starting with "http".
// Inline data: thumbnails and relative paths are skipped.
func parseImageResults(html string, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var urls []string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if strings.HasPrefix(src, "http") {
			urls = append(urls, src)
		}
		return len(urls) < limit
	})
	return urls, nil
}
