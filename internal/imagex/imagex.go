// Package imagex probes pixel dimensions of uploaded images without fully
// decoding them.
package imagex

import (
	"fmt"
	"image"
	"io"

	_ "image/gif"  // register gif
	_ "image/jpeg" // register jpeg
	_ "image/png"  // register png

	_ "golang.org/x/image/webp" // register webp
)

// Dimensions reads just enough of r to determine the image size. The format
// registrations above cover the upload allow-list: JPEG, PNG, GIF and WebP.
func Dimensions(r io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
