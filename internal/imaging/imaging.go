// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging decodes the optional raster assets placed on slides
// (logos and background photos), scales them with CatmullRom resampling
// and encodes finished slides. PNG, JPEG and WebP inputs are accepted.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxPixels rejects decompression bombs before a full decode.
const MaxPixels = 40_000_000

// DefaultJPEGQuality is used when Encode is given a quality outside 1..100.
const DefaultJPEGQuality = 92

// Load reads and decodes an image file.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode checks the image dimensions and then decodes it fully.
func Decode(src io.ReadSeeker) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("imaging: empty image %dx%d", cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("imaging: image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("imaging: seek: %w", err)
	}
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}
	return img, nil
}

// FitHeight scales img to the given height preserving aspect ratio. The
// width is capped at maxWidth when maxWidth > 0, shrinking the height to
// match.
func FitHeight(img image.Image, height, maxWidth int) *image.RGBA {
	b := img.Bounds()
	w := int(float64(b.Dx()) * float64(height) / float64(b.Dy()))
	if maxWidth > 0 && w > maxWidth {
		height = int(float64(height) * float64(maxWidth) / float64(w))
		w = maxWidth
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(height, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Cover scales img to fill a w×h box, cropping the overflow around the
// centre.
func Cover(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	srcRatio := float64(b.Dx()) / float64(b.Dy())
	dstRatio := float64(w) / float64(h)

	crop := b
	if srcRatio > dstRatio {
		cw := int(float64(b.Dy()) * dstRatio)
		x0 := b.Min.X + (b.Dx()-cw)/2
		crop = image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	} else if srcRatio < dstRatio {
		ch := int(float64(b.Dx()) / dstRatio)
		y0 := b.Min.Y + (b.Dy()-ch)/2
		crop = image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Src, nil)
	return dst
}

// Blend draws src over dst at the given opacity in [0,1].
func Blend(dst draw.Image, src image.Image, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, dst.Bounds(), src, src.Bounds().Min, mask, image.Point{}, draw.Over)
}

// Encode writes img as "png" or "jpeg".
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch format {
	case "jpeg", "jpg":
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("imaging: encode jpeg: %w", err)
		}
	case "png", "":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("imaging: encode png: %w", err)
		}
	default:
		return fmt.Errorf("imaging: unsupported format %q", format)
	}
	return nil
}
