package cover

import (
	"context"
	"fmt"
	"path/filepath"

	ioutils "github.com/handiism/tunefetch/internal/io"
	"github.com/handiism/tunefetch/internal/model"
)

// Downloader fetches raw bytes.
type Downloader interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

// Fetcher downloads a chosen candidate and stores it as JPEG.
type Fetcher struct {
	client  Downloader
	images  *ioutils.ImageService
	maxSize int
}

// NewFetcher creates a Fetcher. maxSize bounds the stored image's larger
// side in pixels; zero keeps the original size.
func NewFetcher(client Downloader, images *ioutils.ImageService, maxSize int) *Fetcher {
	return &Fetcher{client: client, images: images, maxSize: maxSize}
}

// Fetch downloads candidate, normalizes it to JPEG and writes it to
// destPath, creating the parent directory if needed.
//
// The returned CoverImage carries both the path and the JPEG bytes.
func (f *Fetcher) Fetch(ctx context.Context, candidate model.ImageCandidate, destPath string) (*model.CoverImage, error) {
	data, err := f.client.DownloadBytes(ctx, candidate.URL)
	if err != nil {
		return nil, fmt.Errorf("download cover: %w", err)
	}

	jpegData, err := f.images.ToJPEG(data, f.maxSize)
	if err != nil {
		return nil, fmt.Errorf("convert cover %s: %w", candidate.URL, err)
	}

	if err := ioutils.EnsureDir(filepath.Dir(destPath)); err != nil {
		return nil, fmt.Errorf("create cover directory: %w", err)
	}
	if err := ioutils.WriteFile(destPath, jpegData); err != nil {
		return nil, fmt.Errorf("save cover: %w", err)
	}

	return &model.CoverImage{
		Path:     destPath,
		Data:     jpegData,
		MIMEType: model.CoverMIMEType,
	}, nil
}
