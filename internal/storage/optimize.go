package storage

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"

	xdraw "golang.org/x/image/draw"
)

const (
	maxImageWidth  = 800
	maxImageHeight = 600
	jpegQuality    = 85
)

// optimize re-encodes JPEG and PNG uploads as JPEG fitted into 800x600.
// Other formats, and anything that fails to decode, are stored untouched.
func optimize(content []byte, ext string) ([]byte, bool) {
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return nil, false
	}

	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, false
	}

	out, err := encodeJPEG(flatten(resizeToFit(src, maxImageWidth, maxImageHeight)), jpegQuality)
	if err != nil {
		return nil, false
	}
	return out, true
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

// flatten composites transparent pixels onto white so JPEG output has no black holes.
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
