package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG writes the atlas texture as a PNG file.
func WritePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode atlas image: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
