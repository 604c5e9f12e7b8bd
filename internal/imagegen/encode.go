package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	// Registered for format sniffing in image.Decode.
	_ "image/gif"
)

// normalize decodes raw image bytes and re-encodes them as a clean byte
// stream. Recognized JPEG input stays JPEG; everything else, including
// formats without an encoder here, comes out as PNG.
func normalize(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s image: %w", format, err)
	}
	return buf.Bytes(), nil
}
