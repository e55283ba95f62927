package u2f_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/twofactor-server/internal/model"
	"github.com/dtroode/twofactor-server/internal/u2f"
	"github.com/dtroode/twofactor-server/internal/u2f/u2ftest"
)

const appID = "https://example.com"

func register(t *testing.T, p *u2f.Protocol, token *u2ftest.Token) model.U2FDevice {
	t.Helper()

	req, state, err := p.BuildRegistrationChallenge(appID)
	require.NoError(t, err)

	resp, err := token.Register(req, appID)
	require.NoError(t, err)

	device, err := p.CheckRegistrationProof(state, resp)
	require.NoError(t, err)
	return device
}

func TestProtocol_RegistrationChallenge(t *testing.T) {
	t.Parallel()

	p := u2f.NewProtocol(u2f.Config{})
	req, state, err := p.BuildRegistrationChallenge(appID)
	require.NoError(t, err)

	assert.Equal(t, appID, req.AppID)
	assert.Equal(t, "U2F_V2", req.Version)
	assert.NotEmpty(t, req.Challenge)

	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(state), &stored))
	assert.Equal(t, appID, stored["AppID"])
	assert.Equal(t, []any{appID}, stored["TrustedFacets"])
}

func TestProtocol_RegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	p := u2f.NewProtocol(u2f.Config{})
	token, err := u2ftest.NewToken()
	require.NoError(t, err)

	device := register(t, p, token)
	assert.Equal(t, token.KeyHandle(), device.KeyHandle)
	assert.NotEmpty(t, device.PublicKey)

	req, state, err := p.BuildAuthenticationChallenge(appID, device.KeyHandle)
	require.NoError(t, err)
	assert.Equal(t, appID, req.AppID)
	assert.Equal(t, device.KeyHandle, req.KeyHandle)
	assert.Equal(t, "U2F_V2", req.Version)

	resp, err := token.Sign(req, appID)
	require.NoError(t, err)

	counter, err := p.CheckAuthenticationProof(state, resp, device, 0)
	require.NoError(t, err)
	assert.Equal(t, token.Counter, counter)
}

func TestProtocol_RegistrationRejected(t *testing.T) {
	t.Parallel()

	p := u2f.NewProtocol(u2f.Config{})
	token, err := u2ftest.NewToken()
	require.NoError(t, err)

	req, state, err := p.BuildRegistrationChallenge(appID)
	require.NoError(t, err)

	t.Run("wrong origin", func(t *testing.T) {
		resp, err := token.Register(req, "https://evil.example")
		require.NoError(t, err)

		_, err = p.CheckRegistrationProof(state, resp)
		var perr *model.ProtocolError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, model.PhaseRegistration, perr.Phase)
		assert.Contains(t, perr.Detail, "untrusted facet")
	})

	t.Run("answer to another challenge", func(t *testing.T) {
		other, _, err := p.BuildRegistrationChallenge(appID)
		require.NoError(t, err)
		resp, err := token.Register(other, appID)
		require.NoError(t, err)

		_, err = p.CheckRegistrationProof(state, resp)
		var perr *model.ProtocolError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Detail, "challenge does not match")
	})

	t.Run("attestation verification against bundled roots", func(t *testing.T) {
		strict := u2f.NewProtocol(u2f.Config{VerifyAttestation: true})
		req, state, err := strict.BuildRegistrationChallenge(appID)
		require.NoError(t, err)
		resp, err := token.Register(req, appID)
		require.NoError(t, err)

		_, err = strict.CheckRegistrationProof(state, resp)
		var perr *model.ProtocolError
		assert.True(t, errors.As(err, &perr))
	})
}

func TestProtocol_AuthenticationRejected(t *testing.T) {
	t.Parallel()

	p := u2f.NewProtocol(u2f.Config{})
	token, err := u2ftest.NewToken()
	require.NoError(t, err)
	device := register(t, p, token)

	t.Run("counter replay", func(t *testing.T) {
		req, state, err := p.BuildAuthenticationChallenge(appID, device.KeyHandle)
		require.NoError(t, err)
		resp, err := token.Sign(req, appID)
		require.NoError(t, err)

		_, err = p.CheckAuthenticationProof(state, resp, device, token.Counter+1)
		var perr *model.ProtocolError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, model.PhaseAuthentication, perr.Phase)
		assert.Contains(t, perr.Detail, "counter too low")
	})

	t.Run("different device", func(t *testing.T) {
		other, err := u2ftest.NewToken()
		require.NoError(t, err)
		otherDevice := register(t, p, other)

		req, state, err := p.BuildAuthenticationChallenge(appID, device.KeyHandle)
		require.NoError(t, err)
		resp, err := token.Sign(req, appID)
		require.NoError(t, err)

		_, err = p.CheckAuthenticationProof(state, resp, otherDevice, 0)
		var perr *model.ProtocolError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Detail, "wrong key handle")
	})

	t.Run("corrupt state", func(t *testing.T) {
		_, err := p.CheckAuthenticationProof("{", model.U2FSignResponse{}, device, 0)
		require.Error(t, err)
		var perr *model.ProtocolError
		assert.False(t, errors.As(err, &perr))
	})

	t.Run("corrupt device", func(t *testing.T) {
		_, state, err := p.BuildAuthenticationChallenge(appID, device.KeyHandle)
		require.NoError(t, err)
		_, err = p.CheckAuthenticationProof(state, model.U2FSignResponse{}, model.U2FDevice{PublicKey: "AAAA", KeyHandle: device.KeyHandle}, 0)
		assert.ErrorIs(t, err, u2f.ErrInvalidDevice)
	})
}

func TestProtocol_TrustedFacets(t *testing.T) {
	t.Parallel()

	p := u2f.NewProtocol(u2f.Config{TrustedFacets: []string{"https://login.example.com"}})
	token, err := u2ftest.NewToken()
	require.NoError(t, err)

	req, state, err := p.BuildRegistrationChallenge(appID)
	require.NoError(t, err)
	resp, err := token.Register(req, "https://login.example.com")
	require.NoError(t, err)

	_, err = p.CheckRegistrationProof(state, resp)
	assert.NoError(t, err)
}
