package ioutils

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrEmptyImage is returned when there is no image data to process.
var ErrEmptyImage = errors.New("empty image data")

// jpegQuality is used for every re-encode.
const jpegQuality = 90

// ImageService converts cover art into embeddable JPEG.
//
// Image search thumbnails are usually JPEG, but the lyrics site regularly
// serves PNG or WebP art. ID3 cover frames are written as image/jpeg, so
// everything is re-encoded.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ToJPEG decodes data (JPEG, PNG, GIF or WebP) and re-encodes it as JPEG.
//
// If maxSize is positive and the image exceeds maxSize in either
// dimension, it is scaled down to fit within maxSize x maxSize with the
// aspect ratio preserved. The Catmull-Rom kernel is used for scaling.
//
// Example:
//
//	// A 1500x1000 PNG becomes a 1000x667 JPEG
//	out, err := svc.ToJPEG(pngData, 1000)
func (s *ImageService) ToJPEG(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if maxSize > 0 {
		img = fit(img, maxSize, maxSize)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// fit scales img down to fit within maxWidth x maxHeight.
// Images that already fit are returned unchanged.
func fit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(math.Round(float64(maxHeight) * ratio))
		height = maxHeight
	} else {
		height = int(math.Round(float64(maxWidth) / ratio))
		width = maxWidth
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
