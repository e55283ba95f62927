package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := NewRenderer(128)
	uri, err := r.Render("otpauth://totp/Acme?secret=JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, dataURIPrefix))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, dataURIPrefix))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestRenderer_EmptyContent(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer(0).Render("   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestNewRenderer_DefaultSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultSize, NewRenderer(-1).size)
}
