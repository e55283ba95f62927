package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
)

// U2FProtocol builds and checks U2F challenges. Challenge state is an opaque
// string the service stores encrypted between the two halves of an exchange.
type U2FProtocol interface {
	BuildRegistrationChallenge(appID string) (model.U2FRegisterRequest, string, error)
	CheckRegistrationProof(state string, resp model.U2FRegisterResponse) (model.U2FDevice, error)
	BuildAuthenticationChallenge(appID, keyHandle string) (model.U2FSignRequest, string, error)
	CheckAuthenticationProof(state string, resp model.U2FSignResponse, device model.U2FDevice, counter uint32) (uint32, error)
}

// U2F drives device registration and authentication.
type U2F struct {
	accounts   *accounts
	encryptor  Encryptor
	protocol   U2FProtocol
	assertions *Assertions
	logger     *logger.Logger
}

func NewU2F(
	store model.AccountStore,
	encryptor Encryptor,
	protocol U2FProtocol,
	assertions *Assertions,
	logger *logger.Logger,
	opts ...Option,
) *U2F {
	s := newSettings(opts)
	return &U2F{
		accounts:   &accounts{store: store, maxAttempts: s.maxAttempts, logger: logger},
		encryptor:  encryptor,
		protocol:   protocol,
		assertions: assertions,
		logger:     logger,
	}
}

// BeginRegistration creates a pending credential and returns the challenge
// the device must answer.
func (s *U2F) BeginRegistration(ctx context.Context, caller model.Caller, appID string) (model.U2FRegistration, error) {
	s.logger.Debug("U2F service: starting registration",
		"account_id", caller.AccountID,
		"app_id", appID)

	var out model.U2FRegistration
	err := s.accounts.mutate(ctx, caller, func(acc *model.Account) error {
		if appID == "" {
			return fmt.Errorf("missing app id: %w", model.ErrInvalidArgument)
		}

		req, state, err := s.protocol.BuildRegistrationChallenge(appID)
		if err != nil {
			return fmt.Errorf("failed to build registration challenge: %w", err)
		}

		encAppID, err := s.encrypt(appID, caller, "app id")
		if err != nil {
			return err
		}
		encState, err := s.encrypt(state, caller, "registration request")
		if err != nil {
			return err
		}

		id := model.AllocateCredentialID(acc.U2F)
		acc.U2F[id] = model.U2FCredential{
			EncryptedAppID: encAppID,
			State:          model.U2FPending{EncryptedRegistrationRequest: encState},
		}

		out = model.U2FRegistration{ID: id, Request: req}
		return nil
	})
	if err != nil {
		s.logError("registration challenge failed", caller, "", err)
		return model.U2FRegistration{}, err
	}

	s.logger.Info("U2F service: registration challenge issued",
		"account_id", caller.AccountID,
		"credential_id", out.ID)

	return out, nil
}

// CompleteRegistration validates the device proof and binds its public key
// to the credential.
func (s *U2F) CompleteRegistration(ctx context.Context, caller model.Caller, id string, resp model.U2FRegisterResponse) error {
	s.logger.Debug("U2F service: completing registration",
		"account_id", caller.AccountID,
		"credential_id", id)

	err := s.accounts.mutate(ctx, caller, func(acc *model.Account) error {
		cred, err := credential(acc, id)
		if err != nil {
			return err
		}

		pending, ok := cred.Pending()
		if !ok {
			return model.ErrNoPendingChallenge
		}

		state, err := s.decrypt(pending.EncryptedRegistrationRequest, caller, "registration request")
		if err != nil {
			return err
		}

		device, err := s.protocol.CheckRegistrationProof(state, resp)
		if err != nil {
			return err
		}

		encKey, err := s.encrypt(device.PublicKey, caller, "public key")
		if err != nil {
			return err
		}
		encHandle, err := s.encrypt(device.KeyHandle, caller, "key handle")
		if err != nil {
			return err
		}

		acc.U2F[id] = model.U2FCredential{
			EncryptedAppID: cred.EncryptedAppID,
			State: model.U2FRegistered{
				EncryptedPublicKey: encKey,
				EncryptedKeyHandle: encHandle,
			},
		}
		return nil
	})
	if err != nil {
		s.logError("registration failed", caller, id, err)
		return err
	}

	s.logger.Info("U2F service: device registered",
		"account_id", caller.AccountID,
		"credential_id", id)

	return nil
}

// BeginAuthentication issues a single-use challenge for a registered device.
func (s *U2F) BeginAuthentication(ctx context.Context, caller model.Caller, id string) (model.U2FAuthentication, error) {
	s.logger.Debug("U2F service: starting authentication",
		"account_id", caller.AccountID,
		"credential_id", id)

	var out model.U2FAuthentication
	err := s.accounts.mutate(ctx, caller, func(acc *model.Account) error {
		cred, err := credential(acc, id)
		if err != nil {
			return err
		}

		reg, ok := cred.Registered()
		if !ok {
			return model.ErrNotRegistered
		}

		appID, err := s.decrypt(cred.EncryptedAppID, caller, "app id")
		if err != nil {
			return err
		}
		keyHandle, err := s.decrypt(reg.EncryptedKeyHandle, caller, "key handle")
		if err != nil {
			return err
		}

		req, state, err := s.protocol.BuildAuthenticationChallenge(appID, keyHandle)
		if err != nil {
			return fmt.Errorf("failed to build authentication challenge: %w", err)
		}

		reg.EncryptedAuthenticationRequest, err = s.encrypt(state, caller, "authentication request")
		if err != nil {
			return err
		}

		cred.State = reg
		acc.U2F[id] = cred

		out = model.U2FAuthentication{ID: id, Request: req}
		return nil
	})
	if err != nil {
		s.logError("authentication challenge failed", caller, id, err)
		return model.U2FAuthentication{}, err
	}

	s.logger.Info("U2F service: authentication challenge issued",
		"account_id", caller.AccountID,
		"credential_id", id)

	return out, nil
}

// CompleteAuthentication checks the device signature. The outstanding
// challenge is consumed whether the proof is accepted or rejected.
func (s *U2F) CompleteAuthentication(ctx context.Context, caller model.Caller, id string, resp model.U2FSignResponse) (model.Verification, error) {
	s.logger.Debug("U2F service: completing authentication",
		"account_id", caller.AccountID,
		"credential_id", id)

	var proofErr error
	err := s.accounts.mutate(ctx, caller, func(acc *model.Account) error {
		proofErr = nil

		cred, err := credential(acc, id)
		if err != nil {
			return err
		}

		reg, ok := cred.Registered()
		if !ok || !reg.AwaitingProof() {
			return model.ErrNoPendingChallenge
		}

		state, err := s.decrypt(reg.EncryptedAuthenticationRequest, caller, "authentication request")
		if err != nil {
			return err
		}
		publicKey, err := s.decrypt(reg.EncryptedPublicKey, caller, "public key")
		if err != nil {
			return err
		}
		keyHandle, err := s.decrypt(reg.EncryptedKeyHandle, caller, "key handle")
		if err != nil {
			return err
		}

		counter, err := s.protocol.CheckAuthenticationProof(state, resp, model.U2FDevice{PublicKey: publicKey, KeyHandle: keyHandle}, reg.Counter)
		var perr *model.ProtocolError
		if err != nil && !errors.As(err, &perr) {
			return fmt.Errorf("failed to check authentication proof: %w", err)
		}

		reg.EncryptedAuthenticationRequest = ""
		if err != nil {
			proofErr = err
		} else {
			reg.Counter = counter
		}

		cred.State = reg
		acc.U2F[id] = cred
		return nil
	})
	if err != nil {
		s.logError("authentication failed", caller, id, err)
		return model.Verification{}, err
	}
	if proofErr != nil {
		s.logger.Warn("U2F service: authentication proof rejected",
			"account_id", caller.AccountID,
			"credential_id", id,
			"error", proofErr)
		return model.Verification{}, proofErr
	}

	token, err := s.assertions.Issue(caller.AccountID, model.MethodU2F, id)
	if err != nil {
		return model.Verification{}, err
	}

	s.logger.Info("U2F service: device authenticated",
		"account_id", caller.AccountID,
		"credential_id", id)

	return model.Verification{Valid: true, Token: token}, nil
}

// Delete removes a U2F credential in any state.
func (s *U2F) Delete(ctx context.Context, caller model.Caller, id string) error {
	err := s.accounts.mutate(ctx, caller, func(acc *model.Account) error {
		if _, err := credential(acc, id); err != nil {
			return err
		}
		delete(acc.U2F, id)
		return nil
	})
	if err != nil {
		s.logError("delete failed", caller, id, err)
		return err
	}

	s.logger.Info("U2F service: credential deleted",
		"account_id", caller.AccountID,
		"credential_id", id)

	return nil
}

func credential(acc *model.Account, id string) (model.U2FCredential, error) {
	if err := checkCredentialID(id); err != nil {
		return model.U2FCredential{}, err
	}
	cred, ok := acc.U2F[id]
	if !ok {
		return model.U2FCredential{}, fmt.Errorf("u2f credential %s: %w", id, model.ErrNotFound)
	}
	return cred, nil
}

func (s *U2F) encrypt(plaintext string, caller model.Caller, field string) (string, error) {
	blob, err := s.encryptor.Encrypt(plaintext, caller.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt %s: %w", field, err)
	}
	return blob, nil
}

func (s *U2F) decrypt(blob string, caller model.Caller, field string) (string, error) {
	plaintext, err := s.encryptor.Decrypt(blob, caller.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s: %w", field, err)
	}
	return plaintext, nil
}

func (s *U2F) logError(msg string, caller model.Caller, id string, err error) {
	var perr *model.ProtocolError
	if errors.Is(err, model.ErrUnauthorized) || errors.Is(err, model.ErrNotFound) || errors.As(err, &perr) {
		s.logger.Info("U2F service: "+msg,
			"account_id", caller.AccountID,
			"credential_id", id,
			"error", err)
		return
	}
	s.logger.Error("U2F service: "+msg,
		"account_id", caller.AccountID,
		"credential_id", id,
		"error", err)
}
