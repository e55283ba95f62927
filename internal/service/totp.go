package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
	"github.com/dtroode/twofactor-server/internal/totp"
)

// QRRenderer turns an otpauth URI into a scannable image data URI.
type QRRenderer interface {
	Render(content string) (string, error)
}

// TOTP enrolls and verifies time-based one-time password credentials.
type TOTP struct {
	accounts   *accounts
	encryptor  Encryptor
	renderer   QRRenderer
	assertions *Assertions
	now        func() time.Time
	logger     *logger.Logger
}

func NewTOTP(
	store model.AccountStore,
	encryptor Encryptor,
	renderer QRRenderer,
	assertions *Assertions,
	logger *logger.Logger,
	opts ...Option,
) *TOTP {
	s := newSettings(opts)
	return &TOTP{
		accounts:   &accounts{store: store, maxAttempts: s.maxAttempts, logger: logger},
		encryptor:  encryptor,
		renderer:   renderer,
		assertions: assertions,
		now:        s.now,
		logger:     logger,
	}
}

// Enroll creates a new TOTP credential and returns its plaintext seed once.
func (s *TOTP) Enroll(ctx context.Context, caller model.Caller, opts model.TOTPOptions) (model.TOTPEnrollment, error) {
	label := opts.Label
	if label == "" {
		label = model.DefaultTOTPLabel
	}

	s.logger.Debug("TOTP service: starting enrollment",
		"account_id", caller.AccountID,
		"issuer", opts.Issuer,
		"label", label)

	var out model.TOTPEnrollment
	err := s.accounts.mutate(ctx, caller, func(acc *model.Account) error {
		secret, err := totp.GenerateSecret()
		if err != nil {
			return err
		}

		uri, err := totp.URI(secret, opts.Issuer, label)
		if err != nil {
			return fmt.Errorf("failed to build key uri: %w", err)
		}

		image, err := s.renderer.Render(uri)
		if err != nil {
			return fmt.Errorf("failed to render qr code: %w", err)
		}

		encrypted, err := s.encryptor.Encrypt(secret, caller.Secret)
		if err != nil {
			return fmt.Errorf("failed to encrypt totp secret: %w", err)
		}

		id := model.AllocateCredentialID(acc.TOTP)
		acc.TOTP[id] = model.TOTPCredential{EncryptedSecret: encrypted}

		out = model.TOTPEnrollment{ID: id, Secret: secret, QRCode: image}
		return nil
	})
	if err != nil {
		s.logger.Error("TOTP service: enrollment failed",
			"account_id", caller.AccountID,
			"error", err)
		return model.TOTPEnrollment{}, err
	}

	s.logger.Info("TOTP service: credential enrolled",
		"account_id", caller.AccountID,
		"credential_id", out.ID)

	return out, nil
}

// Verify checks code against the stored seed. Codes are not consumed and
// stay valid for their whole window.
func (s *TOTP) Verify(ctx context.Context, caller model.Caller, id, code string) (model.Verification, error) {
	acc, err := s.accounts.view(ctx, caller)
	if err != nil {
		return model.Verification{}, err
	}

	if err := checkCredentialID(id); err != nil {
		return model.Verification{}, err
	}

	cred, ok := acc.TOTP[id]
	if !ok {
		return model.Verification{}, fmt.Errorf("totp credential %s: %w", id, model.ErrNotFound)
	}

	if code == "" {
		return model.Verification{}, fmt.Errorf("missing code: %w", model.ErrInvalidArgument)
	}

	secret, err := s.encryptor.Decrypt(cred.EncryptedSecret, caller.Secret)
	if err != nil {
		s.logger.Error("TOTP service: failed to decrypt secret",
			"account_id", caller.AccountID,
			"credential_id", id,
			"error", err)
		return model.Verification{}, fmt.Errorf("failed to decrypt totp secret: %w", err)
	}

	valid, err := totp.Validate(secret, code, s.now())
	if err != nil {
		s.logger.Error("TOTP service: stored secret is unusable",
			"account_id", caller.AccountID,
			"credential_id", id,
			"error", err)
		return model.Verification{}, fmt.Errorf("failed to validate code: %w", err)
	}

	if !valid {
		s.logger.Info("TOTP service: code rejected",
			"account_id", caller.AccountID,
			"credential_id", id)
		return model.Verification{Valid: false}, nil
	}

	token, err := s.assertions.Issue(caller.AccountID, model.MethodTOTP, id)
	if err != nil {
		return model.Verification{}, err
	}

	s.logger.Info("TOTP service: code accepted",
		"account_id", caller.AccountID,
		"credential_id", id)

	return model.Verification{Valid: true, Token: token}, nil
}
