// Package totp implements RFC 6238 time-based one-time passwords on top of
// RFC 4226 HOTP.
package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	Digits    = 6
	Period    = 30
	Algorithm = "SHA1"
	// Skew is the number of steps accepted on each side of the current one.
	Skew = 1

	secretSize = 20
)

var (
	ErrFailedToGenerateSecret = errors.New("failed to generate TOTP secret")
	ErrInvalidSecret          = errors.New("invalid TOTP secret")
	ErrMissingLabel           = errors.New("missing TOTP label")
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecret returns a random 160-bit seed encoded as unpadded base32.
func GenerateSecret() (string, error) {
	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	return encoding.EncodeToString(secret), nil
}

// URI builds the otpauth:// key URI understood by authenticator apps. A
// non-empty issuer prefixes the label as "issuer:label".
func URI(secret, issuer, label string) (string, error) {
	if label == "" {
		return "", ErrMissingLabel
	}
	if _, err := decodeSecret(secret); err != nil {
		return "", err
	}

	path := url.PathEscape(label)
	if issuer != "" {
		path = url.PathEscape(issuer) + ":" + path
	}

	query := url.Values{}
	query.Set("secret", secret)
	if issuer != "" {
		query.Set("issuer", issuer)
	}
	query.Set("algorithm", Algorithm)
	query.Set("digits", fmt.Sprintf("%d", Digits))
	query.Set("period", fmt.Sprintf("%d", Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", path, query.Encode()), nil
}

// Code returns the code for the time step containing t.
func Code(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return format(hotp(key, counter(t))), nil
}

// Validate reports whether code matches the step containing t or one of its
// Skew neighbours.
func Validate(secret, code string, t time.Time) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if len(code) != Digits {
		return false, nil
	}

	c := counter(t)
	for i := -Skew; i <= Skew; i++ {
		if hmac.Equal([]byte(format(hotp(key, c+int64(i)))), []byte(code)) {
			return true, nil
		}
	}
	return false, nil
}

func counter(t time.Time) int64 {
	return t.Unix() / Period
}

func format(code uint32) string {
	return fmt.Sprintf("%0*d", Digits, code)
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if secret == "" {
		return nil, ErrInvalidSecret
	}
	key, err := encoding.DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implements RFC 4226 with dynamic truncation.
func hotp(key []byte, counter int64) uint32 {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < Digits; i++ {
		mod *= 10
	}
	return value % mod
}
