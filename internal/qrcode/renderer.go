package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyContent          = errors.New("content cannot be empty")
	ErrFailedToGenerateImage = errors.New("failed to generate QR code")
)

const (
	defaultSize   = 256
	dataURIPrefix = "data:image/png;base64,"
)

// Renderer encodes text as a PNG QR code data URI.
type Renderer struct {
	size int
}

// NewRenderer creates a Renderer producing size x size images. A non-positive
// size falls back to 256.
func NewRenderer(size int) *Renderer {
	if size <= 0 {
		size = defaultSize
	}
	return &Renderer{size: size}
}

// Render returns content as a data:image/png;base64 URI.
func (r *Renderer) Render(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	png, err := skipqrcode.Encode(content, skipqrcode.Medium, r.size)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateImage, err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
