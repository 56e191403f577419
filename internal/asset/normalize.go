package asset

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/garrison-vtt/garrison/internal/core"
)

// maxPixels bounds decoded image area so a small compressed upload cannot
// expand into an arbitrarily large bitmap.
const maxPixels = 50_000_000

// webpMaxSide is the largest width or height a WebP image can carry.
const webpMaxSide = 16383

// Normalize decodes an uploaded image, fits it to the kind's geometry and
// re-encodes it as lossless WebP. The same input always yields the same
// output.
func Normalize(data []byte, kind Kind) ([]byte, error) {
	if !kind.IsImage() {
		return nil, core.Internal("normalize "+kind.Name+": not an image kind", nil)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, core.UnsupportedMedia("unsupported or corrupt image", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, core.UnsupportedMedia("unsupported or corrupt image", nil)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, core.UnsupportedMedia("image dimensions too large", nil)
	}
	if !kind.Geometry.fits(kind.Geometry.size(cfg.Width, cfg.Height)) {
		return nil, core.UnsupportedMedia("image dimensions too large", nil)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, core.UnsupportedMedia("unsupported or corrupt image", err)
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, kind.Geometry.apply(img), nil); err != nil {
		return nil, core.Internal("encode webp", err)
	}
	return buf.Bytes(), nil
}

// size returns the dimensions apply produces for a w×h source.
func (g *Geometry) size(w, h int) (int, int) {
	switch {
	case g.Fill:
		return g.Width, g.Height
	case w > g.Width:
		return g.Width, max(1, int(math.Floor(float64(g.Width)*float64(h)/float64(w)+0.5)))
	default:
		return w, h
	}
}

func (g *Geometry) fits(w, h int) bool {
	if w > webpMaxSide || h > webpMaxSide {
		return false
	}
	return g.MaxPixels == 0 || int64(w)*int64(h) <= g.MaxPixels
}

func (g *Geometry) apply(img image.Image) image.Image {
	if g.Fill {
		return imaging.Fill(img, g.Width, g.Height, imaging.Center, imaging.Lanczos)
	}
	if img.Bounds().Dx() > g.Width {
		return imaging.Resize(img, g.Width, 0, imaging.Lanczos)
	}
	return imaging.Clone(img)
}
