// Package imaging normalises uploaded deal photos to a fixed 4:3 JPEG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// Output geometry and encoding.
const (
	Width   = 800
	Height  = 600
	Quality = 85
)

// MaxPixels bounds the decoded size of an upload. Headers are checked before
// any pixel data is allocated.
const MaxPixels = 40_000_000

// ErrInvalidImage is returned when the upload cannot be decoded or is too
// large once decoded.
var ErrInvalidImage = errors.New("invalid image")

// Normalize decodes a JPEG, PNG or GIF, centre-crops it to 4:3, scales it to
// Width x Height and re-encodes it as JPEG. Callers bound r; Normalize bounds
// the pixel count.
func Normalize(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}

	dst := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, cropRect(src.Bounds(), Width, Height), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// cropRect returns the largest centred rectangle inside b with aspect w:h.
func cropRect(b image.Rectangle, w, h int) image.Rectangle {
	bw, bh := b.Dx(), b.Dy()
	if bw*h > bh*w {
		nw := bh * w / h
		x0 := b.Min.X + (bw-nw)/2
		return image.Rect(x0, b.Min.Y, x0+nw, b.Max.Y)
	}
	nh := bw * h / w
	y0 := b.Min.Y + (bh-nh)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+nh)
}
