package cover

import (
	"context"
	"net/url"

	"github.com/handiism/tunefetch/internal/model"
)

// GeniusSearchURL is the public search API of the lyrics site.
const GeniusSearchURL = "https://genius.com/api/search"

type geniusResponse struct {
	Response struct {
		Hits []struct {
			Result struct {
				Title           string `json:"title"`
				SongArtImageURL string `json:"song_art_image_url"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// Genius queries the lyrics site for song art.
type Genius struct {
	client Getter

	// BaseURL is the search endpoint; tests point it at a local server.
	BaseURL string
}

// NewGenius creates a lyrics-site source.
func NewGenius(client Getter) *Genius {
	return &Genius{client: client, BaseURL: GeniusSearchURL}
}

func (g *Genius) Name() string { return "genius" }

// Search requests "{song} {artist}" and returns the non-empty
// song_art_image_url of every hit, in hit order.
func (g *Genius) Search(ctx context.Context, q model.SearchQuery) ([]string, error) {
	searchURL := g.BaseURL + "?q=" + url.QueryEscape(q.SongName+" "+q.Artist)

	var resp geniusResponse
	if err := g.client.GetJSON(ctx, searchURL, &resp); err != nil {
		return nil, &SourceError{Source: g.Name(), Err: err}
	}

	var urls []string
	for _, hit := range resp.Response.Hits {
		if len(urls) >= PerSourceLimit {
			break
		}
		if hit.Result.SongArtImageURL != "" {
			urls = append(urls, hit.Result.SongArtImageURL)
		}
	}
	return urls, nil
}
