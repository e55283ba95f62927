// Package encryption protects credential fields at rest with a key supplied
// by the caller on every request.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	keySize   = 32
	nonceSize = aes.BlockSize
	delimiter = ":"
)

var (
	// ErrFormat is returned when a blob is not "nonce:ciphertext".
	ErrFormat = errors.New("malformed encrypted blob")
	// ErrCrypto is returned when the key or the cipher input cannot be used.
	ErrCrypto = errors.New("encryption failure")
)

// CTR encrypts strings with AES-256 in counter mode. The output carries no
// authentication tag.
type CTR struct{}

// NewCTR creates a CTR encryptor.
func NewCTR() *CTR {
	return &CTR{}
}

// Encrypt returns base64(nonce):base64(ciphertext) under a fresh random nonce.
func (e *CTR) Encrypt(plaintext, keyB64 string) (string, error) {
	block, err := newBlock(keyB64)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Join(ErrCrypto, fmt.Errorf("failed to read nonce: %w", err))
	}

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCTR(block, nonce).XORKeyStream(ciphertext, []byte(plaintext))

	return base64.StdEncoding.EncodeToString(nonce) + delimiter + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt.
func (e *CTR) Decrypt(blob, keyB64 string) (string, error) {
	parts := strings.Split(blob, delimiter)
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: expected 2 parts, got %d", ErrFormat, len(parts))
	}

	block, err := newBlock(keyB64)
	if err != nil {
		return "", err
	}

	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return "", errors.Join(ErrCrypto, fmt.Errorf("failed to decode nonce: %w", err))
	}
	if len(nonce) != nonceSize {
		return "", fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrCrypto, nonceSize, len(nonce))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", errors.Join(ErrCrypto, fmt.Errorf("failed to decode ciphertext: %w", err))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, nonce).XORKeyStream(plaintext, ciphertext)

	return string(plaintext), nil
}

// ValidateKey reports whether keyB64 decodes to a 256-bit key.
func ValidateKey(keyB64 string) error {
	_, err := decodeKey(keyB64)
	return err
}

// ValidateKey lets a CTR serve as the transport's key validator.
func (e *CTR) ValidateKey(keyB64 string) error {
	return ValidateKey(keyB64)
}

func newBlock(keyB64 string) (cipher.Block, error) {
	key, err := decodeKey(keyB64)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrCrypto, err)
	}
	return block, nil
}

func decodeKey(keyB64 string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, errors.Join(ErrCrypto, fmt.Errorf("failed to decode key: %w", err))
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrCrypto, keySize, len(key))
	}
	return key, nil
}
