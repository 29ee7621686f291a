// Package imaging converts arbitrary input images into the bounded-size JPEG
// payload sent to the inference service.
//
// Oversized images are downscaled so the long edge fits MaxLongEdge, which
// bounds both the network payload and per-call inference cost without
// materially harming text legibility for typical document or label photos.
// The output is always JPEG regardless of the input format, so the remote
// request can declare a single MIME type.
package imaging

import (
	"bytes"
	"encoding/base64"

	imglib "github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/erfanbaree-007/easyRx/internal/logger"
)

const (
	// MaxLongEdge is the maximum pixel size of the longer image dimension.
	MaxLongEdge = 1024

	// JPEGQuality is the re-encode quality factor, chosen to balance payload
	// size against OCR fidelity.
	JPEGQuality = 85
)

// Normalizer produces a base64 JPEG payload from raw image bytes.
type Normalizer interface {
	// Normalize decodes raw image bytes, downscales them to fit the configured
	// bound and re-encodes as JPEG. The result is plain base64 with no
	// data-URI prefix.
	Normalize(raw []byte) (string, error)
}

// JPEGNormalizer implements Normalizer with aspect-preserving downscaling and
// fixed-quality JPEG re-encoding.
type JPEGNormalizer struct {
	maxLongEdge int
	quality     int
	log         zerolog.Logger
}

// NewNormalizer creates a normalizer with the default bound and quality.
func NewNormalizer() *JPEGNormalizer {
	return NewNormalizerWithOptions(MaxLongEdge, JPEGQuality)
}

// NewNormalizerWithOptions creates a normalizer with explicit bound and
// quality, used by tests and callers with special payload constraints.
func NewNormalizerWithOptions(maxLongEdge, quality int) *JPEGNormalizer {
	return &JPEGNormalizer{
		maxLongEdge: maxLongEdge,
		quality:     quality,
		log:         logger.WithComponent("imaging"),
	}
}

// Normalize implements Normalizer.
func (n *JPEGNormalizer) Normalize(raw []byte) (string, error) {
	const op = "Normalize"

	if len(raw) == 0 {
		return "", NewNormalizeError(op, ErrEmptyImage, "")
	}

	// Accept data-URI payloads from callers that captured via a browser-style
	// surface; only the base64 body is decoded.
	raw, err := stripDataURI(raw)
	if err != nil {
		return "", NewNormalizeError(op, ErrImageDecode, "invalid data URI payload")
	}

	src, err := imglib.Decode(bytes.NewReader(raw))
	if err != nil {
		n.log.Debug().Err(err).Int("bytes", len(raw)).Msg("image decode failed")
		return "", NewNormalizeError(op, ErrImageDecode, err.Error())
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Fit never upscales, so images already within bounds keep their
	// resolution and are only re-encoded for a consistent output format.
	if width > n.maxLongEdge || height > n.maxLongEdge {
		src = imglib.Fit(src, n.maxLongEdge, n.maxLongEdge, imglib.Lanczos)
		n.log.Debug().
			Int("source_width", width).
			Int("source_height", height).
			Int("width", src.Bounds().Dx()).
			Int("height", src.Bounds().Dy()).
			Msg("image downscaled")
	}

	var buf bytes.Buffer
	if err := imglib.Encode(&buf, src, imglib.JPEG, imglib.JPEGQuality(n.quality)); err != nil {
		return "", NewNormalizeError(op, ErrImageEncode, err.Error())
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// stripDataURI returns the decoded bytes of a "data:...;base64," payload, or
// the input unchanged when it is not a data URI.
func stripDataURI(raw []byte) ([]byte, error) {
	if !bytes.HasPrefix(raw, []byte("data:")) {
		return raw, nil
	}
	idx := bytes.IndexByte(raw, ',')
	if idx < 0 {
		return nil, ErrImageDecode
	}
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(raw)-idx-1))
	n, err := base64.StdEncoding.Decode(decoded, raw[idx+1:])
	if err != nil {
		return nil, err
	}
	return decoded[:n], nil
}
