package images

import (
	"bytes"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

// Profile photos are normalized before the multipart upload: decoded,
// downscaled to fit maxEdge and re-encoded as webp. The backend stores the
// bytes as-is, so shrinking here keeps uploads cheap.
const (
	maxEdge = 512
	quality = 85
)

// Normalize re-encodes an uploaded photo. The returned filename always has
// the .webp extension.
func Normalize(r io.Reader) ([]byte, string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	img := downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), "profile.webp", nil
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
