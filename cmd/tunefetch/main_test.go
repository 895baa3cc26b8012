package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tunefetch/internal/model"
	"github.com/handiism/tunefetch/internal/pipeline"
)

type stubLocator struct{ videos []model.VideoCandidate }

func (s stubLocator) Locate(context.Context, model.SearchQuery) []model.VideoCandidate {
	return s.videos
}

type stubAcquirer struct{ urls []string }

func (s *stubAcquirer) Acquire(_ context.Context, url, out string) (*model.AudioArtifact, error) {
	s.urls = append(s.urls, url)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(out, []byte{0xFF, 0xFB, 0x90, 0x64, 0, 0, 0, 0}, 0644); err != nil {
		return nil, err
	}
	return model.NewAudioArtifact(out), nil
}

type stubTagger struct{ records []model.TagRecord }

func (s *stubTagger) Tag(_ string, rec model.TagRecord) (bool, error) {
	s.records = append(s.records, rec)
	return rec.Cover != nil, nil
}

func TestPrompter_ReadQuery(t *testing.T) {
	var out bytes.Buffer
	pr := newPrompter(strings.NewReader("  Imagine \nJohn Lennon\n\n\n"), &out)

	q, err := pr.readQuery()
	require.NoError(t, err)

	assert.Equal(t, model.NewSearchQuery("Imagine", "John Lennon", "", ""), q)
	assert.Contains(t, out.String(), "Enter the song name: ")
	assert.Contains(t, out.String(), "Enter the genre (or press Enter to skip): ")
}

func TestPrompter_SelectCover(t *testing.T) {
	var out bytes.Buffer
	pr := newPrompter(strings.NewReader("2\nabc\n"), &out)
	cands := []model.ImageCandidate{{URL: "https://a"}, {URL: "https://b"}}

	n, err := pr.SelectCover(context.Background(), cands)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, out.String(), "2. https://b")
	assert.Contains(t, out.String(), "0. Skip album cover")

	_, err = pr.SelectCover(context.Background(), cands)
	assert.Error(t, err)
}

func TestPrompter_AgainOnlyOnYes(t *testing.T) {
	assert.True(t, newPrompter(strings.NewReader("YES\n"), &bytes.Buffer{}).again())
	assert.False(t, newPrompter(strings.NewReader("y\n"), &bytes.Buffer{}).again())
	assert.False(t, newPrompter(strings.NewReader(""), &bytes.Buffer{}).again())
}

func TestInteractive(t *testing.T) {
	dir := t.TempDir()
	acq := &stubAcquirer{}
	tagger := &stubTagger{}
	var out bytes.Buffer

	p := pipeline.New(pipeline.Components{
		Locator: stubLocator{videos: []model.VideoCandidate{
			{Title: "first", PlaybackURL: "u1"},
			{Title: "second", PlaybackURL: "u2"},
		}},
		Acquirer: acq,
		Tagger:   tagger,
	}, pipeline.Options{DownloadsDir: dir, CoversDir: dir}, printer(&out, false))

	input := strings.Join([]string{
		// empty artist: re-prompt
		"Imagine", "", "", "",
		// invalid video choice: retry
		"Imagine", "John Lennon", "", "", "9",
		// success, then another
		"Imagine", "John Lennon", "Imagine", "Rock", "2", "yes",
		// exit at video selection
		"Jealous Guy", "John Lennon", "", "", "0",
	}, "\n") + "\n"

	interactive(context.Background(), p, newPrompter(strings.NewReader(input), &out), &out)

	assert.Equal(t, []string{"u2"}, acq.urls)
	require.Len(t, tagger.records, 1)
	assert.Equal(t, "Rock", tagger.records[0].Genre)
	assert.FileExists(t, filepath.Join(dir, "Imagine - John Lennon.mp3"))

	text := out.String()
	assert.Contains(t, text, "Song name and artist cannot be empty")
	assert.Contains(t, text, "Invalid selection. Please try again.")
	assert.Contains(t, text, "Done! The file is saved as:")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(text), "Exiting."))
}

func TestInteractive_StopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	p := pipeline.New(pipeline.Components{Locator: stubLocator{}}, pipeline.Options{}, printer(&out, false))

	interactive(context.Background(), p, newPrompter(strings.NewReader(""), &out), &out)

	assert.NotContains(t, out.String(), "An error occurred")
}
