package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
)

// MaxImageSize is the largest image accepted for an entry. Encoded images are
// stored inline in the document.
const MaxImageSize = 900 * 1024

const (
	msgTooLarge = "File size must be less than 900KB."
	msgNotImage = "File must be an image."
)

// EncodeDataURL reads an image and returns it as a base64 data URL.
func EncodeDataURL(r io.Reader) (string, error) {
	// One byte past the limit tells an oversized file from an exact fit.
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", apperr.NewValidationFields(msgTooLarge, map[string]string{"image": msgTooLarge})
	}
	if len(data) == 0 {
		return "", apperr.NewValidationFields(msgNotImage, map[string]string{"image": msgNotImage})
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", apperr.NewValidationFields(msgNotImage, map[string]string{"image": msgNotImage})
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURL reports whether s looks like an image data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}
