package model

import "time"

// Second-factor methods recorded in assertion tokens.
const (
	MethodTOTP = "totp"
	MethodU2F  = "u2f"
)

// Assertion states that an account passed a second-factor check.
type Assertion struct {
	AccountID    string
	Method       string
	CredentialID string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// TokenManager signs and validates assertion tokens.
type TokenManager interface {
	GenerateAssertionToken(assertion Assertion) (string, error)
	ParseAssertionToken(token string) (Assertion, error)
}
