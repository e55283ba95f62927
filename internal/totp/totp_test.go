package totp_test

import (
	"encoding/base32"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/twofactor-server/internal/totp"
)

// RFC 6238 appendix B seed "12345678901234567890" in base32.
var rfcSecret = base32.StdEncoding.EncodeToString([]byte("12345678901234567890"))

func TestCode_RFC6238Vectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unix int64
		want string
	}{
		{unix: 59, want: "287082"},
		{unix: 1111111109, want: "081804"},
		{unix: 1111111111, want: "050471"},
		{unix: 1234567890, want: "005924"},
		{unix: 2000000000, want: "279037"},
	}

	for _, tt := range tests {
		got, err := totp.Code(rfcSecret, time.Unix(tt.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "t=%d", tt.unix)
	}
}

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	a, err := totp.GenerateSecret()
	require.NoError(t, err)
	b, err := totp.GenerateSecret()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 32)
	assert.GreaterOrEqual(t, len(a), 16)
	assert.NotContains(t, a, "=")
	assert.Equal(t, strings.ToUpper(a), a)
}

func TestValidate_Window(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	now := time.Unix(1_700_000_010, 0)
	code, err := totp.Code(secret, now)
	require.NoError(t, err)

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{name: "same step", at: now, valid: true},
		{name: "checked one step later", at: now.Add(30 * time.Second), valid: true},
		{name: "checked one step earlier", at: now.Add(-30 * time.Second), valid: true},
		{name: "code from three steps ago", at: now.Add(90 * time.Second), valid: false},
		{name: "code from three steps ahead", at: now.Add(-90 * time.Second), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := totp.Validate(secret, code, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestValidate_RejectsMalformedCode(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"", "12345", "1234567"} {
		ok, err := totp.Validate(rfcSecret, code, time.Unix(59, 0))
		require.NoError(t, err)
		assert.False(t, ok, code)
	}
}

func TestValidate_InvalidSecret(t *testing.T) {
	t.Parallel()

	_, err := totp.Validate("not base32 !", "123456", time.Now())
	assert.ErrorIs(t, err, totp.ErrInvalidSecret)

	_, err = totp.Code("", time.Now())
	assert.ErrorIs(t, err, totp.ErrInvalidSecret)
}

func TestURI(t *testing.T) {
	t.Parallel()

	t.Run("with issuer", func(t *testing.T) {
		uri, err := totp.URI("JBSWY3DPEHPK3PXP", "Acme Corp", "alice@example.com")
		require.NoError(t, err)

		u, err := url.Parse(uri)
		require.NoError(t, err)
		assert.Equal(t, "otpauth", u.Scheme)
		assert.Equal(t, "totp", u.Host)
		assert.Equal(t, "/Acme Corp:alice@example.com", u.Path)
		assert.Equal(t, "JBSWY3DPEHPK3PXP", u.Query().Get("secret"))
		assert.Equal(t, "Acme Corp", u.Query().Get("issuer"))
		assert.Equal(t, "SHA1", u.Query().Get("algorithm"))
		assert.Equal(t, "6", u.Query().Get("digits"))
		assert.Equal(t, "30", u.Query().Get("period"))
	})

	t.Run("without issuer", func(t *testing.T) {
		uri, err := totp.URI("JBSWY3DPEHPK3PXP", "", "Acme")
		require.NoError(t, err)

		u, err := url.Parse(uri)
		require.NoError(t, err)
		assert.Equal(t, "/Acme", u.Path)
		assert.False(t, u.Query().Has("issuer"))
	})

	t.Run("missing label", func(t *testing.T) {
		_, err := totp.URI("JBSWY3DPEHPK3PXP", "Acme", "")
		assert.ErrorIs(t, err, totp.ErrMissingLabel)
	})

	t.Run("invalid secret", func(t *testing.T) {
		_, err := totp.URI("!!", "Acme", "label")
		assert.ErrorIs(t, err, totp.ErrInvalidSecret)
	})
}
