// Package u2ftest provides a software U2F token for exercising registration
// and authentication without hardware.
package u2ftest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/dtroode/twofactor-server/internal/model"
)

const (
	typRegister = "navigator.id.finishEnrollment"
	typSign     = "navigator.id.getAssertion"
)

// Token is a U2F authenticator held in memory.
type Token struct {
	key       *ecdsa.PrivateKey
	keyHandle []byte
	certKey   *ecdsa.PrivateKey
	certDER   []byte
	// Counter is incremented before each signature.
	Counter uint32
}

// NewToken creates a token with a fresh device key and a self-signed
// attestation certificate.
func NewToken() (*Token, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate device key: %w", err)
	}
	certKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate attestation key: %w", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "u2ftest attestation"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}
	certDER, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &certKey.PublicKey, certKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create attestation certificate: %w", err)
	}

	keyHandle := make([]byte, 32)
	if _, err := rand.Read(keyHandle); err != nil {
		return nil, fmt.Errorf("failed to generate key handle: %w", err)
	}

	return &Token{key: key, keyHandle: keyHandle, certKey: certKey, certDER: certDER}, nil
}

// KeyHandle returns the websafe base64 key handle of the token.
func (t *Token) KeyHandle() string {
	return encode(t.keyHandle)
}

// Register answers a registration challenge as seen from origin.
func (t *Token) Register(req model.U2FRegisterRequest, origin string) (model.U2FRegisterResponse, error) {
	clientData, err := clientData(typRegister, req.Challenge, origin)
	if err != nil {
		return model.U2FRegisterResponse{}, err
	}

	pub := elliptic.Marshal(elliptic.P256(), t.key.X, t.key.Y)
	appParam := sha256.Sum256([]byte(req.AppID))
	challenge := sha256.Sum256(clientData)

	signed := []byte{0}
	signed = append(signed, appParam[:]...)
	signed = append(signed, challenge[:]...)
	signed = append(signed, t.keyHandle...)
	signed = append(signed, pub...)
	digest := sha256.Sum256(signed)

	sig, err := ecdsa.SignASN1(rand.Reader, t.certKey, digest[:])
	if err != nil {
		return model.U2FRegisterResponse{}, fmt.Errorf("failed to sign registration: %w", err)
	}

	data := []byte{0x05}
	data = append(data, pub...)
	data = append(data, byte(len(t.keyHandle)))
	data = append(data, t.keyHandle...)
	data = append(data, t.certDER...)
	data = append(data, sig...)

	return model.U2FRegisterResponse{
		Version:          req.Version,
		RegistrationData: encode(data),
		ClientData:       encode(clientData),
	}, nil
}

// Sign answers an authentication challenge as seen from origin.
func (t *Token) Sign(req model.U2FSignRequest, origin string) (model.U2FSignResponse, error) {
	clientData, err := clientData(typSign, req.Challenge, origin)
	if err != nil {
		return model.U2FSignResponse{}, err
	}

	t.Counter++
	raw := make([]byte, 5)
	raw[0] = 0x01
	binary.BigEndian.PutUint32(raw[1:], t.Counter)

	appParam := sha256.Sum256([]byte(req.AppID))
	challenge := sha256.Sum256(clientData)

	var signed []byte
	signed = append(signed, appParam[:]...)
	signed = append(signed, raw...)
	signed = append(signed, challenge[:]...)
	digest := sha256.Sum256(signed)

	sig, err := ecdsa.SignASN1(rand.Reader, t.key, digest[:])
	if err != nil {
		return model.U2FSignResponse{}, fmt.Errorf("failed to sign assertion: %w", err)
	}

	return model.U2FSignResponse{
		KeyHandle:     encode(t.keyHandle),
		SignatureData: encode(append(raw, sig...)),
		ClientData:    encode(clientData),
	}, nil
}

func clientData(typ, challenge, origin string) ([]byte, error) {
	raw, err := json.Marshal(map[string]string{
		"typ":       typ,
		"challenge": challenge,
		"origin":    origin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode client data: %w", err)
	}
	return raw, nil
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
