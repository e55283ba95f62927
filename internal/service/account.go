package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
)

const defaultMaxAttempts = 3

// Encryptor protects credential fields with the caller's secret.
type Encryptor interface {
	Encrypt(plaintext, keyB64 string) (string, error)
	Decrypt(blob, keyB64 string) (string, error)
}

// Option configures a second-factor service.
type Option func(*settings)

type settings struct {
	maxAttempts int
	now         func() time.Time
}

// WithMaxAttempts bounds how many times a read-modify-write cycle is run
// when the store reports a concurrent write.
func WithMaxAttempts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithClock overrides the time source used for TOTP steps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{maxAttempts: defaultMaxAttempts, now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// accounts runs the shared precondition chain in front of the store and
// retries whole read-modify-write cycles on version conflicts.
type accounts struct {
	store       model.AccountStore
	maxAttempts int
	logger      *logger.Logger
}

func (a *accounts) load(ctx context.Context, caller model.Caller) (model.Account, error) {
	if caller.AccountID == "" || caller.Secret == "" {
		return model.Account{}, fmt.Errorf("missing api key or secret: %w", model.ErrUnauthorized)
	}

	acc, err := a.store.Get(ctx, caller.AccountID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("unknown account: %w", model.ErrUnauthorized)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("%w: failed to get account: %w", model.ErrPersistence, err)
	}

	if !a.store.IsActivated(acc) {
		return model.Account{}, fmt.Errorf("account is not activated: %w", model.ErrUnauthorized)
	}

	return acc, nil
}

// view loads the account for a read-only operation.
func (a *accounts) view(ctx context.Context, caller model.Caller) (model.Account, error) {
	for attempt := 1; ; attempt++ {
		acc, err := a.load(ctx, caller)
		if err == nil || !errors.Is(err, model.ErrConflict) || attempt >= a.maxAttempts {
			return acc, err
		}
	}
}

// mutate applies fn to a private copy of the account and stores the result.
// An error from fn aborts the cycle without writing.
func (a *accounts) mutate(ctx context.Context, caller model.Caller, fn func(acc *model.Account) error) error {
	for attempt := 1; ; attempt++ {
		acc, err := a.load(ctx, caller)
		if errors.Is(err, model.ErrConflict) && attempt < a.maxAttempts {
			continue
		}
		if err != nil {
			return err
		}

		acc = acc.Clone()
		if err := fn(&acc); err != nil {
			return err
		}

		err = a.store.Put(ctx, acc)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrConflict) {
			return fmt.Errorf("%w: failed to put account: %w", model.ErrPersistence, err)
		}
		if attempt >= a.maxAttempts {
			return fmt.Errorf("failed to put account after %d attempts: %w", attempt, err)
		}

		a.logger.Warn("Account store: concurrent write detected, retrying",
			"account_id", caller.AccountID,
			"attempt", attempt)
	}
}

func checkCredentialID(id string) error {
	if id == "" {
		return fmt.Errorf("missing credential id: %w", model.ErrUnauthorized)
	}
	return nil
}
