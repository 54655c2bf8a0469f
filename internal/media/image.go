// filepath: internal/media/image.go
// Package media inspects uploaded images before they are stored.
package media

import (
	"errors"
	"fmt"
	"image"
	"io"

	// Import decoders for accepted formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrNotAnImage is returned when the upload cannot be decoded as a supported image.
var ErrNotAnImage = errors.New("file is not a supported image")

// ImageInfo is what InspectImage learns from the image header.
type ImageInfo struct {
	Format      string // "jpeg", "png", "gif" or "webp"
	Width       int
	Height      int
	ContentType string
	Extension   string // canonical extension including the dot
}

var formats = map[string]struct{ contentType, ext string }{
	"jpeg": {"image/jpeg", ".jpg"},
	"png":  {"image/png", ".png"},
	"gif":  {"image/gif", ".gif"},
	"webp": {"image/webp", ".webp"},
}

// InspectImage decodes only the image header. The reader is consumed, so callers
// that still need the bytes must rewind or buffer.
func InspectImage(r io.Reader) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	f, ok := formats[format]
	if !ok {
		return ImageInfo{}, fmt.Errorf("%w: unsupported format %s", ErrNotAnImage, format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return ImageInfo{}, fmt.Errorf("%w: zero-dimension image", ErrNotAnImage)
	}
	return ImageInfo{
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ContentType: f.contentType,
		Extension:   f.ext,
	}, nil
}
