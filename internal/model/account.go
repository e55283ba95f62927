package model

import (
	"context"
	"fmt"
)

// AccountStore defines persistence operations for second-factor accounts.
//
// Get returns ErrNotFound for an unknown account. Put returns ErrConflict when
// the stored record changed since it was read, as told by Account.Version.
type AccountStore interface {
	Get(ctx context.Context, id string) (Account, error)
	IsActivated(account Account) bool
	Put(ctx context.Context, account Account) error
}

// Account is the per API key record holding every enrolled credential.
type Account struct {
	ID        string
	Activated bool
	TOTP      map[string]TOTPCredential
	U2F       map[string]U2FCredential
	// Version is an opaque concurrency token owned by the store.
	Version string
}

// TOTPCredential is an enrolled time-based one-time password seed.
type TOTPCredential struct {
	EncryptedSecret string `json:"encryptedSecret" bson:"encryptedSecret"`
}

// U2FCredential is a U2F device binding in one of its two lifecycle states.
type U2FCredential struct {
	EncryptedAppID string
	State          U2FState
}

// U2FState is either U2FPending or U2FRegistered.
type U2FState interface {
	u2fState()
}

// U2FPending is a credential waiting for the device registration proof.
type U2FPending struct {
	EncryptedRegistrationRequest string
}

// U2FRegistered is a credential bound to a device public key.
type U2FRegistered struct {
	EncryptedPublicKey string
	EncryptedKeyHandle string
	// EncryptedAuthenticationRequest is empty unless a challenge is outstanding.
	EncryptedAuthenticationRequest string
	Counter                        uint32
}

func (U2FPending) u2fState()    {}
func (U2FRegistered) u2fState() {}

// AwaitingProof reports whether an authentication challenge was issued and not yet consumed.
func (r U2FRegistered) AwaitingProof() bool {
	return r.EncryptedAuthenticationRequest != ""
}

// Pending returns the pending state of the credential if it has one.
func (c U2FCredential) Pending() (U2FPending, bool) {
	p, ok := c.State.(U2FPending)
	return p, ok
}

// Registered returns the registered state of the credential if it has one.
func (c U2FCredential) Registered() (U2FRegistered, bool) {
	r, ok := c.State.(U2FRegistered)
	return r, ok
}

// Clone returns a copy of the account whose credential maps can be mutated
// without touching the original.
func (a Account) Clone() Account {
	out := a
	out.TOTP = make(map[string]TOTPCredential, len(a.TOTP))
	for k, v := range a.TOTP {
		out.TOTP[k] = v
	}
	out.U2F = make(map[string]U2FCredential, len(a.U2F))
	for k, v := range a.U2F {
		out.U2F[k] = v
	}
	return out
}

// CredentialSet is the persisted form of an account's credential mappings.
type CredentialSet struct {
	TOTP map[string]TOTPCredential `json:"totp" bson:"totp"`
	U2F  map[string]U2FRecord      `json:"u2f" bson:"u2f"`
}

// U2FRecord is the flat persisted form of a U2FCredential.
type U2FRecord struct {
	EncryptedAppID                 string `json:"encryptedAppId" bson:"encryptedAppId"`
	EncryptedRegistrationRequest   string `json:"encryptedRegistrationRequest,omitempty" bson:"encryptedRegistrationRequest,omitempty"`
	EncryptedPublicKey             string `json:"encryptedPublicKey,omitempty" bson:"encryptedPublicKey,omitempty"`
	EncryptedKeyHandle             string `json:"encryptedKeyHandle,omitempty" bson:"encryptedKeyHandle,omitempty"`
	EncryptedAuthenticationRequest string `json:"encryptedAuthenticationRequest,omitempty" bson:"encryptedAuthenticationRequest,omitempty"`
	Counter                        uint32 `json:"counter,omitempty" bson:"counter,omitempty"`
}

// NewU2FRecord flattens a credential for storage.
func NewU2FRecord(c U2FCredential) U2FRecord {
	rec := U2FRecord{EncryptedAppID: c.EncryptedAppID}
	switch s := c.State.(type) {
	case U2FPending:
		rec.EncryptedRegistrationRequest = s.EncryptedRegistrationRequest
	case U2FRegistered:
		rec.EncryptedPublicKey = s.EncryptedPublicKey
		rec.EncryptedKeyHandle = s.EncryptedKeyHandle
		rec.EncryptedAuthenticationRequest = s.EncryptedAuthenticationRequest
		rec.Counter = s.Counter
	}
	return rec
}

// Credential rebuilds the tagged credential, rejecting records that are
// both pending and registered or neither.
func (r U2FRecord) Credential() (U2FCredential, error) {
	pending := r.EncryptedRegistrationRequest != ""
	registered := r.EncryptedPublicKey != "" && r.EncryptedKeyHandle != ""

	switch {
	case pending && !registered && r.EncryptedPublicKey == "" && r.EncryptedKeyHandle == "":
		return U2FCredential{
			EncryptedAppID: r.EncryptedAppID,
			State:          U2FPending{EncryptedRegistrationRequest: r.EncryptedRegistrationRequest},
		}, nil
	case registered && !pending:
		return U2FCredential{
			EncryptedAppID: r.EncryptedAppID,
			State: U2FRegistered{
				EncryptedPublicKey:             r.EncryptedPublicKey,
				EncryptedKeyHandle:             r.EncryptedKeyHandle,
				EncryptedAuthenticationRequest: r.EncryptedAuthenticationRequest,
				Counter:                        r.Counter,
			},
		}, nil
	default:
		return U2FCredential{}, ErrCorruptCredential
	}
}

// CredentialSet returns the persisted form of the account's credentials.
func (a Account) CredentialSet() CredentialSet {
	set := CredentialSet{
		TOTP: make(map[string]TOTPCredential, len(a.TOTP)),
		U2F:  make(map[string]U2FRecord, len(a.U2F)),
	}
	for id, c := range a.TOTP {
		set.TOTP[id] = c
	}
	for id, c := range a.U2F {
		set.U2F[id] = NewU2FRecord(c)
	}
	return set
}

// SetCredentials replaces the account's credential maps with the decoded set.
func (a *Account) SetCredentials(set CredentialSet) error {
	a.TOTP = make(map[string]TOTPCredential, len(set.TOTP))
	for id, c := range set.TOTP {
		a.TOTP[id] = c
	}
	a.U2F = make(map[string]U2FCredential, len(set.U2F))
	for id, rec := range set.U2F {
		c, err := rec.Credential()
		if err != nil {
			return fmt.Errorf("u2f credential %s: %w", id, err)
		}
		a.U2F[id] = c
	}
	return nil
}
