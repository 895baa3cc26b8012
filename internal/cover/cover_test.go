package cover

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/handiism/tunefetch/internal/http"
	ioutils "github.com/handiism/tunefetch/internal/io"
	"github.com/handiism/tunefetch/internal/model"
)

type stubSource struct {
	name  string
	urls  []string
	err   error
	delay time.Duration
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Search(ctx context.Context, q model.SearchQuery) ([]string, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.urls, s.err
}

func urlsOf(c []model.ImageCandidate) []string {
	out := make([]string, len(c))
	for i, v := range c {
		out[i] = v.URL
	}
	return out
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		lists [][]string
		want  []string
	}{
		{
			name:  "order preserved across sources",
			limit: 5,
			lists: [][]string{{"a", "b"}, {"c"}},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "duplicates dropped keeping first",
			limit: 5,
			lists: [][]string{{"a", "b", "a"}, {"b", "c"}},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "truncated to limit",
			limit: 5,
			lists: [][]string{{"1", "2", "3", "4"}, {"5", "6", "7"}},
			want:  []string{"1", "2", "3", "4", "5"},
		},
		{
			name:  "empty strings skipped",
			limit: 5,
			lists: [][]string{{"", "a"}, {""}},
			want:  []string{"a"},
		},
		{
			name:  "nothing",
			limit: 5,
			lists: [][]string{nil, nil},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urlsOf(Merge(tt.limit, tt.lists...)))
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	q := model.NewSearchQuery("Imagine", "John Lennon", "Imagine", "Rock")

	t.Run("image search first even when it answers last", func(t *testing.T) {
		r := NewResolver(5, nil,
			stubSource{name: "images", urls: []string{"i1", "i2"}, delay: 30 * time.Millisecond},
			stubSource{name: "lyrics", urls: []string{"l1", "i1"}},
		)
		assert.Equal(t, []string{"i1", "i2", "l1"}, urlsOf(r.Resolve(context.Background(), q)))
	})

	t.Run("failing source is swallowed", func(t *testing.T) {
		r := NewResolver(5, nil,
			stubSource{name: "images", err: &SourceError{Source: "images", Err: errors.New("HTTP 429")}},
			stubSource{name: "lyrics", urls: []string{"l1"}},
		)
		assert.Equal(t, []string{"l1"}, urlsOf(r.Resolve(context.Background(), q)))
	})

	t.Run("both failing yields empty", func(t *testing.T) {
		r := NewResolver(5, nil,
			stubSource{name: "images", err: errors.New("down")},
			stubSource{name: "lyrics", err: errors.New("down")},
		)
		assert.Empty(t, r.Resolve(context.Background(), q))
	})

	t.Run("nil sources ignored and limit applied", func(t *testing.T) {
		r := NewResolver(2, nil,
			nil,
			stubSource{name: "lyrics", urls: []string{"a", "b", "c"}},
		)
		assert.Equal(t, []string{"a", "b"}, urlsOf(r.Resolve(context.Background(), q)))
	})
}

func TestParseImageResults(t *testing.T) {
	html := `<html><body>
		<img src="/logo.png">
		<img src="data:image/gif;base64,R0lGOD">
		<img src="https://encrypted-tbn0.gstatic.com/images?q=1">
		<img alt="no src">
		<img src="http://example.com/2.jpg">
		<img src="https://example.com/3.jpg">
		<img src="https://example.com/4.jpg">
		<img src="https://example.com/5.jpg">
		<img src="https://example.com/6.jpg">
	</body></html>`

	urls, err := parseImageResults(html, PerSourceLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://encrypted-tbn0.gstatic.com/images?q=1",
		"http://example.com/2.jpg",
		"https://example.com/3.jpg",
		"https://example.com/4.jpg",
		"https://example.com/5.jpg",
	}, urls)
}

func TestGoogleImages_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "isch", r.URL.Query().Get("tbm"))
		w.Write([]byte(`<img src="https://img.example/a.jpg">`))
	}))
	defer srv.Close()

	src := NewGoogleImages(apphttp.NewClient(5*time.Second, 0))
	src.BaseURL = srv.URL

	q := model.NewSearchQuery("Imagine", "John Lennon", "Imagine", "")
	urls, err := src.Search(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/a.jpg"}, urls)
	assert.Equal(t, "Imagine Imagine John Lennon album cover", gotQuery)
}

func TestGoogleImages_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewGoogleImages(apphttp.NewClient(5*time.Second, 0))
	src.BaseURL = srv.URL

	_, err := src.Search(context.Background(), model.NewSearchQuery("a", "b", "", ""))

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "google-images", srcErr.Source)

	var statusErr *apphttp.StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestGenius_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"response":{"hits":[
			{"result":{"title":"Imagine","song_art_image_url":"https://images.genius.com/x.png"}},
			{"result":{"title":"Imagine (Live)","song_art_image_url":""}},
			{"result":{"title":"Jealous Guy"}},
			{"result":{"title":"Imagine (Demo)","song_art_image_url":"https://images.genius.com/y.jpg"}}
		]}}`))
	}))
	defer srv.Close()

	src := NewGenius(apphttp.NewClient(5*time.Second, 0))
	src.BaseURL = srv.URL

	urls, err := src.Search(context.Background(), model.NewSearchQuery("Imagine", "John Lennon", "", ""))

	require.NoError(t, err)
	assert.Equal(t, "Imagine John Lennon", gotQuery)
	assert.Equal(t, []string{"https://images.genius.com/x.png", "https://images.genius.com/y.jpg"}, urls)
}

func TestGenius_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	src := NewGenius(apphttp.NewClient(5*time.Second, 0))
	src.BaseURL = srv.URL

	_, err := src.Search(context.Background(), model.NewSearchQuery("a", "b", "", ""))
	var srcErr *SourceError
	assert.ErrorAs(t, err, &srcErr)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetcher_Fetch(t *testing.T) {
	data := pngBytes(t, 40, 20)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "Album Covers", "Imagine_John Lennon.jpg")
	f := NewFetcher(apphttp.NewClient(5*time.Second, 0), ioutils.NewImageService(), 10)

	img, err := f.Fetch(context.Background(), model.ImageCandidate{URL: srv.URL + "/cover.png"}, dest)
	require.NoError(t, err)

	assert.Equal(t, dest, img.Path)
	assert.Equal(t, model.CoverMIMEType, img.MIMEType)

	onDisk, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, img.Data, onDisk)

	decoded, format, err := image.Decode(bytes.NewReader(onDisk))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 10, decoded.Bounds().Dx())
	assert.Equal(t, 5, decoded.Bounds().Dy())
}

func TestFetcher_FetchFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("this is not an image"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(apphttp.NewClient(5*time.Second, 0), ioutils.NewImageService(), 0)

	_, err := f.Fetch(context.Background(), model.ImageCandidate{URL: srv.URL + "/missing"}, filepath.Join(dir, "a.jpg"))
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), model.ImageCandidate{URL: srv.URL + "/garbage"}, filepath.Join(dir, "b.jpg"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "b.jpg"))
}
