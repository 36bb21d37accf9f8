package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// SavePNG writes img to path; the format follows the extension.
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Thumbnail scales img to width w keeping the aspect ratio.
func Thumbnail(img image.Image, w int) image.Image {
	return imaging.Resize(img, w, 0, imaging.Lanczos)
}
