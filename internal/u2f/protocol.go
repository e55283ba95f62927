// Package u2f adapts github.com/tstranex/u2f to the challenge-response
// surface used by the U2F service. Challenges are serialized to JSON so the
// service can store them encrypted between the two halves of each exchange.
package u2f

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	fido "github.com/tstranex/u2f"

	"github.com/dtroode/twofactor-server/internal/model"
)

const version = "U2F_V2"

var ErrInvalidDevice = errors.New("invalid stored device")

// Config controls challenge construction and attestation checks.
type Config struct {
	// TrustedFacets lists origins allowed to answer a challenge. When empty
	// the appID itself is the only trusted facet.
	TrustedFacets []string
	// VerifyAttestation checks the device certificate against the bundled
	// attestation roots.
	VerifyAttestation bool
}

// Protocol builds and checks U2F registration and authentication exchanges.
type Protocol struct {
	cfg Config
}

// NewProtocol creates a Protocol.
func NewProtocol(cfg Config) *Protocol {
	return &Protocol{cfg: cfg}
}

// BuildRegistrationChallenge returns the request for the device and the
// serialized challenge to keep until the proof arrives.
func (p *Protocol) BuildRegistrationChallenge(appID string) (model.U2FRegisterRequest, string, error) {
	c, err := fido.NewChallenge(appID, p.facets(appID))
	if err != nil {
		return model.U2FRegisterRequest{}, "", fmt.Errorf("failed to create challenge: %w", err)
	}

	state, err := encodeChallenge(c)
	if err != nil {
		return model.U2FRegisterRequest{}, "", err
	}

	web := fido.NewWebRegisterRequest(c, nil)
	req := model.U2FRegisterRequest{AppID: web.AppID}
	if len(web.RegisterRequests) > 0 {
		req.Version = web.RegisterRequests[0].Version
		req.Challenge = web.RegisterRequests[0].Challenge
	}

	return req, state, nil
}

// CheckRegistrationProof validates the device answer against the stored
// challenge. A rejected proof is reported as *model.ProtocolError.
func (p *Protocol) CheckRegistrationProof(state string, resp model.U2FRegisterResponse) (model.U2FDevice, error) {
	c, err := decodeChallenge(state)
	if err != nil {
		return model.U2FDevice{}, err
	}

	reg, err := fido.Register(fido.RegisterResponse{
		Version:          resp.Version,
		RegistrationData: resp.RegistrationData,
		ClientData:       resp.ClientData,
	}, c, &fido.Config{SkipAttestationVerify: !p.cfg.VerifyAttestation})
	if err != nil {
		return model.U2FDevice{}, &model.ProtocolError{Phase: model.PhaseRegistration, Detail: err.Error()}
	}

	return model.U2FDevice{
		PublicKey: encode(elliptic.Marshal(reg.PubKey.Curve, reg.PubKey.X, reg.PubKey.Y)),
		KeyHandle: encode(reg.KeyHandle),
	}, nil
}

// BuildAuthenticationChallenge returns the sign request addressed to the
// device identified by keyHandle and the serialized challenge.
func (p *Protocol) BuildAuthenticationChallenge(appID, keyHandle string) (model.U2FSignRequest, string, error) {
	kh, err := decode(keyHandle)
	if err != nil {
		return model.U2FSignRequest{}, "", errors.Join(ErrInvalidDevice, err)
	}

	c, err := fido.NewChallenge(appID, p.facets(appID))
	if err != nil {
		return model.U2FSignRequest{}, "", fmt.Errorf("failed to create challenge: %w", err)
	}

	state, err := encodeChallenge(c)
	if err != nil {
		return model.U2FSignRequest{}, "", err
	}

	sign := c.SignRequest([]fido.Registration{{KeyHandle: kh}})
	req := model.U2FSignRequest{
		Version:   version,
		Challenge: sign.Challenge,
		AppID:     sign.AppID,
		KeyHandle: keyHandle,
	}
	if len(sign.RegisteredKeys) > 0 {
		req.Version = sign.RegisteredKeys[0].Version
		req.KeyHandle = sign.RegisteredKeys[0].KeyHandle
	}

	return req, state, nil
}

// CheckAuthenticationProof verifies the device signature and returns the new
// device counter. A rejected proof is reported as *model.ProtocolError.
func (p *Protocol) CheckAuthenticationProof(state string, resp model.U2FSignResponse, device model.U2FDevice, counter uint32) (uint32, error) {
	c, err := decodeChallenge(state)
	if err != nil {
		return 0, err
	}

	reg, err := registration(device)
	if err != nil {
		return 0, err
	}

	next, err := reg.Authenticate(fido.SignResponse{
		KeyHandle:     resp.KeyHandle,
		SignatureData: resp.SignatureData,
		ClientData:    resp.ClientData,
	}, c, counter)
	if err != nil {
		return 0, &model.ProtocolError{Phase: model.PhaseAuthentication, Detail: err.Error()}
	}

	return next, nil
}

func (p *Protocol) facets(appID string) []string {
	if len(p.cfg.TrustedFacets) == 0 {
		return []string{appID}
	}
	return p.cfg.TrustedFacets
}

func registration(device model.U2FDevice) (*fido.Registration, error) {
	point, err := decode(device.PublicKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidDevice, err)
	}
	x, y := elliptic.Unmarshal(elliptic.P256(), point)
	if x == nil {
		return nil, fmt.Errorf("%w: public key is not a P-256 point", ErrInvalidDevice)
	}

	kh, err := decode(device.KeyHandle)
	if err != nil {
		return nil, errors.Join(ErrInvalidDevice, err)
	}

	return &fido.Registration{
		KeyHandle: kh,
		PubKey:    ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y},
	}, nil
}

func encodeChallenge(c *fido.Challenge) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to serialize challenge: %w", err)
	}
	return string(raw), nil
}

func decodeChallenge(state string) (fido.Challenge, error) {
	var c fido.Challenge
	if err := json.Unmarshal([]byte(state), &c); err != nil {
		return fido.Challenge{}, fmt.Errorf("failed to deserialize challenge: %w", err)
	}
	return c, nil
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func decode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
