package cover

import (
	"context"
	"fmt"

	"github.com/handiism/tunefetch/internal/model"
)

// PerSourceLimit caps how many URLs a single source contributes.
const PerSourceLimit = 5

// Source is one provider of cover image URLs.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Search returns image URLs for q in provider order.
	Search(ctx context.Context, q model.SearchQuery) ([]string, error)
}

// Getter is the subset of the HTTP client the sources need.
type Getter interface {
	GetString(ctx context.Context, url string) (string, error)
	GetJSON(ctx context.Context, url string, v any) error
}

// SourceError reports that a source could not be queried or parsed.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("cover source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Merge concatenates lists in order, drops empty and repeated URLs, and
// truncates the result to limit entries.
//
// Merge is pure: the same lists always yield the same candidates.
func Merge(limit int, lists ...[]string) []model.ImageCandidate {
	seen := make(map[string]struct{})
	var out []model.ImageCandidate
	for _, list := range lists {
		for _, u := range list {
			if len(out) >= limit {
				return out
			}
			if u == "" {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, model.ImageCandidate{URL: u})
		}
	}
	return out
}
