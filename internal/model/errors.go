package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrConflict          = errors.New("account was modified concurrently")
	ErrPersistence       = errors.New("persistence failure")
	ErrCorruptCredential = errors.New("credential record is neither pending nor registered")
	ErrAlreadyExists     = errors.New("account already exists")
)

var (
	// ErrNoPendingChallenge is returned when a proof arrives for a credential
	// with no outstanding challenge.
	ErrNoPendingChallenge = fmt.Errorf("no pending challenge: %w", ErrNotFound)
	// ErrNotRegistered is returned when authentication is attempted on a
	// credential still waiting for its registration proof.
	ErrNotRegistered = fmt.Errorf("credential is not registered: %w", ErrNotFound)
)

// ProtocolPhase names the U2F step that rejected a proof.
type ProtocolPhase string

const (
	PhaseRegistration   ProtocolPhase = "registration"
	PhaseAuthentication ProtocolPhase = "authentication"
)

// ProtocolError reports a proof rejected by the U2F check. Detail is safe to
// return to the caller.
type ProtocolError struct {
	Phase  ProtocolPhase
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Phase, e.Detail)
}
