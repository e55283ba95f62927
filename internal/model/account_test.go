package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU2FRecord_Credential(t *testing.T) {
	tests := []struct {
		name    string
		record  U2FRecord
		want    U2FCredential
		wantErr error
	}{
		{
			name:   "pending",
			record: U2FRecord{EncryptedAppID: "app", EncryptedRegistrationRequest: "req"},
			want: U2FCredential{
				EncryptedAppID: "app",
				State:          U2FPending{EncryptedRegistrationRequest: "req"},
			},
		},
		{
			name:   "registered without outstanding challenge",
			record: U2FRecord{EncryptedAppID: "app", EncryptedPublicKey: "pk", EncryptedKeyHandle: "kh", Counter: 7},
			want: U2FCredential{
				EncryptedAppID: "app",
				State:          U2FRegistered{EncryptedPublicKey: "pk", EncryptedKeyHandle: "kh", Counter: 7},
			},
		},
		{
			name: "registered awaiting proof",
			record: U2FRecord{
				EncryptedAppID:                 "app",
				EncryptedPublicKey:             "pk",
				EncryptedKeyHandle:             "kh",
				EncryptedAuthenticationRequest: "auth",
			},
			want: U2FCredential{
				EncryptedAppID: "app",
				State: U2FRegistered{
					EncryptedPublicKey:             "pk",
					EncryptedKeyHandle:             "kh",
					EncryptedAuthenticationRequest: "auth",
				},
			},
		},
		{
			name:    "both pending and registered",
			record:  U2FRecord{EncryptedAppID: "app", EncryptedRegistrationRequest: "req", EncryptedPublicKey: "pk", EncryptedKeyHandle: "kh"},
			wantErr: ErrCorruptCredential,
		},
		{
			name:    "neither",
			record:  U2FRecord{EncryptedAppID: "app"},
			wantErr: ErrCorruptCredential,
		},
		{
			name:    "public key without key handle",
			record:  U2FRecord{EncryptedAppID: "app", EncryptedPublicKey: "pk"},
			wantErr: ErrCorruptCredential,
		},
		{
			name:    "pending with stray key handle",
			record:  U2FRecord{EncryptedAppID: "app", EncryptedRegistrationRequest: "req", EncryptedKeyHandle: "kh"},
			wantErr: ErrCorruptCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.record.Credential()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.record, NewU2FRecord(got))
		})
	}
}

func TestAccount_CredentialSetRoundTrip(t *testing.T) {
	acc := Account{
		ID:        "key",
		Activated: true,
		TOTP:      map[string]TOTPCredential{"t1": {EncryptedSecret: "s"}},
		U2F: map[string]U2FCredential{
			"u1": {EncryptedAppID: "a", State: U2FPending{EncryptedRegistrationRequest: "r"}},
			"u2": {EncryptedAppID: "a", State: U2FRegistered{EncryptedPublicKey: "p", EncryptedKeyHandle: "k"}},
		},
	}

	raw, err := json.Marshal(acc.CredentialSet())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"encryptedRegistrationRequest":"r"`)
	assert.NotContains(t, string(raw), `"encryptedAuthenticationRequest"`)

	var set CredentialSet
	require.NoError(t, json.Unmarshal(raw, &set))

	got := Account{ID: acc.ID, Activated: acc.Activated}
	require.NoError(t, got.SetCredentials(set))
	assert.Equal(t, acc, got)
}

func TestAccount_SetCredentialsRejectsCorruptRecord(t *testing.T) {
	var acc Account
	err := acc.SetCredentials(CredentialSet{U2F: map[string]U2FRecord{"bad": {EncryptedAppID: "a"}}})
	assert.ErrorIs(t, err, ErrCorruptCredential)
	assert.Contains(t, err.Error(), "bad")
}

func TestAccount_Clone(t *testing.T) {
	acc := Account{
		ID:   "key",
		TOTP: map[string]TOTPCredential{"t1": {EncryptedSecret: "s"}},
		U2F:  map[string]U2FCredential{"u1": {EncryptedAppID: "a", State: U2FPending{}}},
	}

	cp := acc.Clone()
	cp.TOTP["t2"] = TOTPCredential{}
	delete(cp.U2F, "u1")

	assert.Len(t, acc.TOTP, 1)
	assert.Len(t, acc.U2F, 1)
}

func TestU2FCredential_StateAccessors(t *testing.T) {
	pending := U2FCredential{State: U2FPending{EncryptedRegistrationRequest: "r"}}
	_, ok := pending.Registered()
	assert.False(t, ok)
	p, ok := pending.Pending()
	assert.True(t, ok)
	assert.Equal(t, "r", p.EncryptedRegistrationRequest)

	reg := U2FCredential{State: U2FRegistered{EncryptedPublicKey: "p", EncryptedKeyHandle: "k"}}
	r, ok := reg.Registered()
	assert.True(t, ok)
	assert.False(t, r.AwaitingProof())
	r.EncryptedAuthenticationRequest = "x"
	assert.True(t, r.AwaitingProof())
}

func TestProtocolError(t *testing.T) {
	err := &ProtocolError{Phase: PhaseAuthentication, Detail: "u2f: invalid signature"}
	assert.Equal(t, "authentication failed: u2f: invalid signature", err.Error())
}
