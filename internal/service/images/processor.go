// Package images validates and normalizes uploaded pictures. Every stored
// image — user avatar or task thumbnail — goes through the same pipeline:
// size and extension checks, decode, resize to a fixed square, re-encode
// as PNG. Handlers therefore always serve image/png regardless of what
// was uploaded.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Normalized images are square thumbnails of this dimension.
const thumbnailSize = 250

// Validation errors. The messages name the violated constraint because
// they are surfaced to the client verbatim.
var (
	// ErrUnsupportedFormat is returned for files outside the extension
	// allow-list.
	ErrUnsupportedFormat = errors.New("file must be a jpg, jpeg or png image")

	// ErrTooLarge is returned when the upload exceeds the size limit.
	// Wrapped with the concrete limit by Normalize.
	ErrTooLarge = errors.New("file exceeds the upload size limit")

	// ErrNotAnImage is returned when the payload cannot be decoded even
	// though the extension looked acceptable.
	ErrNotAnImage = errors.New("file is not a decodable image")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Processor turns raw uploads into canonical PNG thumbnails.
type Processor struct {
	maxBytes int64
}

// NewProcessor creates a Processor enforcing the given upload size limit.
func NewProcessor(maxBytes int64) *Processor {
	if maxBytes <= 0 {
		panic("maxBytes must be positive")
	}
	return &Processor{maxBytes: maxBytes}
}

// MaxBytes returns the configured upload size limit.
func (p *Processor) MaxBytes() int64 {
	return p.maxBytes
}

// Normalize validates the upload by filename and size, then decodes it,
// resizes it to a 250x250 thumbnail and re-encodes it as PNG.
func (p *Processor) Normalize(filename string, r io.Reader) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedFormat
	}

	// Read one byte past the limit to distinguish "at the limit" from
	// "over it" without buffering an unbounded payload.
	data, err := io.ReadAll(io.LimitReader(r, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, fmt.Errorf("%w of %d bytes", ErrTooLarge, p.maxBytes)
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}

	thumb := imaging.Resize(src, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return out.Bytes(), nil
}
