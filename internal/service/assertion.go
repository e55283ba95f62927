package service

import (
	"context"
	"fmt"

	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
)

// Assertions issues and checks the tokens handed out after a successful
// second-factor verification.
type Assertions struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewAssertions(manager model.TokenManager, logger *logger.Logger) *Assertions {
	return &Assertions{manager: manager, logger: logger}
}

// Issue signs an assertion for the verified credential.
func (s *Assertions) Issue(accountID, method, credentialID string) (string, error) {
	token, err := s.manager.GenerateAssertionToken(model.Assertion{
		AccountID:    accountID,
		Method:       method,
		CredentialID: credentialID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue assertion: %w", err)
	}
	return token, nil
}

// Check validates a token previously returned by Issue.
func (s *Assertions) Check(_ context.Context, token string) (model.Assertion, error) {
	if token == "" {
		return model.Assertion{}, fmt.Errorf("missing assertion token: %w", model.ErrUnauthorized)
	}

	assertion, err := s.manager.ParseAssertionToken(token)
	if err != nil {
		s.logger.Debug("Assertion service: token rejected", "error", err)
		return model.Assertion{}, fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}

	return assertion, nil
}
