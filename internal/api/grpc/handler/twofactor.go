package handler

import (
	"context"

	"github.com/dtroode/twofactor-server/internal/api/grpc/twofactor"
	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
)

// TOTPService enrolls and verifies time-based one-time password credentials.
type TOTPService interface {
	Enroll(ctx context.Context, caller model.Caller, opts model.TOTPOptions) (model.TOTPEnrollment, error)
	Verify(ctx context.Context, caller model.Caller, id, code string) (model.Verification, error)
}

// U2FService runs the U2F registration and authentication ceremonies.
type U2FService interface {
	BeginRegistration(ctx context.Context, caller model.Caller, appID string) (model.U2FRegistration, error)
	CompleteRegistration(ctx context.Context, caller model.Caller, id string, resp model.U2FRegisterResponse) error
	BeginAuthentication(ctx context.Context, caller model.Caller, id string) (model.U2FAuthentication, error)
	CompleteAuthentication(ctx context.Context, caller model.Caller, id string, resp model.U2FSignResponse) (model.Verification, error)
	Delete(ctx context.Context, caller model.Caller, id string) error
}

// AssertionService validates assertion tokens.
type AssertionService interface {
	Check(ctx context.Context, token string) (model.Assertion, error)
}

// TwoFactor handles gRPC endpoints of the TwoFactor service.
type TwoFactor struct {
	twofactor.UnimplementedTwoFactorServer
	totpService      TOTPService
	u2fService       U2FService
	assertionService AssertionService
	contextManager   model.ContextManager
	logger           *logger.Logger
}

// NewTwoFactor creates a new TwoFactor handler.
func NewTwoFactor(
	totpService TOTPService,
	u2fService U2FService,
	assertionService AssertionService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *TwoFactor {
	return &TwoFactor{
		totpService:      totpService,
		u2fService:       u2fService,
		assertionService: assertionService,
		contextManager:   contextManager,
		logger:           logger,
	}
}

func (h *TwoFactor) caller(ctx context.Context) (model.Caller, error) {
	caller, ok := h.contextManager.GetCallerFromContext(ctx)
	if !ok {
		h.logger.Error("TwoFactor handler: caller not found in context")
		return model.Caller{}, handleError(model.ErrUnauthorized)
	}
	return caller, nil
}

// EnrollTOTP creates a TOTP credential and returns its seed and QR code.
func (h *TwoFactor) EnrollTOTP(ctx context.Context, req *twofactor.EnrollTOTPRequest) (*twofactor.EnrollTOTPResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	enrollment, err := h.totpService.Enroll(ctx, caller, model.TOTPOptions{
		Issuer: req.Issuer,
		Label:  req.Label,
	})
	if err != nil {
		h.logger.Error("TwoFactor handler: totp enrollment failed",
			"account_id", caller.AccountID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("TwoFactor handler: totp enrolled",
		"account_id", caller.AccountID,
		"credential_id", enrollment.ID)

	return &twofactor.EnrollTOTPResponse{
		UUID:   enrollment.ID,
		Secret: enrollment.Secret,
		QRCode: enrollment.QRCode,
	}, nil
}

// VerifyTOTP checks a six-digit code against a TOTP credential.
func (h *TwoFactor) VerifyTOTP(ctx context.Context, req *twofactor.VerifyTOTPRequest) (*twofactor.VerifyResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.totpService.Verify(ctx, caller, req.UUID, req.Code)
	if err != nil {
		h.logger.Error("TwoFactor handler: totp verification failed",
			"account_id", caller.AccountID,
			"credential_id", req.UUID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &twofactor.VerifyResponse{Valid: res.Valid, Token: res.Token}, nil
}

// BeginU2FRegistration allocates a pending U2F credential and returns its challenge.
func (h *TwoFactor) BeginU2FRegistration(ctx context.Context, req *twofactor.BeginU2FRegistrationRequest) (*twofactor.BeginU2FRegistrationResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	reg, err := h.u2fService.BeginRegistration(ctx, caller, req.AppID)
	if err != nil {
		h.logger.Error("TwoFactor handler: u2f registration start failed",
			"account_id", caller.AccountID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &twofactor.BeginU2FRegistrationResponse{
		UUID:      reg.ID,
		AppID:     reg.Request.AppID,
		Version:   reg.Request.Version,
		Challenge: reg.Request.Challenge,
	}, nil
}

// CompleteU2FRegistration checks the device's registration proof.
func (h *TwoFactor) CompleteU2FRegistration(ctx context.Context, req *twofactor.CompleteU2FRegistrationRequest) (*twofactor.CompleteU2FRegistrationResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	err = h.u2fService.CompleteRegistration(ctx, caller, req.UUID, model.U2FRegisterResponse{
		Version:          req.Version,
		RegistrationData: req.RegistrationData,
		ClientData:       req.ClientData,
	})
	if err != nil {
		h.logger.Error("TwoFactor handler: u2f registration finish failed",
			"account_id", caller.AccountID,
			"credential_id", req.UUID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("TwoFactor handler: u2f device registered",
		"account_id", caller.AccountID,
		"credential_id", req.UUID)

	return &twofactor.CompleteU2FRegistrationResponse{}, nil
}

// BeginU2FAuthentication issues a sign challenge for a registered credential.
func (h *TwoFactor) BeginU2FAuthentication(ctx context.Context, req *twofactor.BeginU2FAuthenticationRequest) (*twofactor.BeginU2FAuthenticationResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	auth, err := h.u2fService.BeginAuthentication(ctx, caller, req.UUID)
	if err != nil {
		h.logger.Error("TwoFactor handler: u2f authentication start failed",
			"account_id", caller.AccountID,
			"credential_id", req.UUID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &twofactor.BeginU2FAuthenticationResponse{
		UUID:      auth.ID,
		Version:   auth.Request.Version,
		Challenge: auth.Request.Challenge,
		AppID:     auth.Request.AppID,
		KeyHandle: auth.Request.KeyHandle,
	}, nil
}

// CompleteU2FAuthentication checks the device's signature over the pending challenge.
func (h *TwoFactor) CompleteU2FAuthentication(ctx context.Context, req *twofactor.CompleteU2FAuthenticationRequest) (*twofactor.VerifyResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.u2fService.CompleteAuthentication(ctx, caller, req.UUID, model.U2FSignResponse{
		KeyHandle:     req.KeyHandle,
		SignatureData: req.SignatureData,
		ClientData:    req.ClientData,
	})
	if err != nil {
		h.logger.Error("TwoFactor handler: u2f authentication finish failed",
			"account_id", caller.AccountID,
			"credential_id", req.UUID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &twofactor.VerifyResponse{Valid: res.Valid, Token: res.Token}, nil
}

// DeleteU2F removes a U2F credential in any state.
func (h *TwoFactor) DeleteU2F(ctx context.Context, req *twofactor.DeleteU2FRequest) (*twofactor.DeleteU2FResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.u2fService.Delete(ctx, caller, req.UUID); err != nil {
		h.logger.Error("TwoFactor handler: u2f delete failed",
			"account_id", caller.AccountID,
			"credential_id", req.UUID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("TwoFactor handler: u2f credential deleted",
		"account_id", caller.AccountID,
		"credential_id", req.UUID)

	return &twofactor.DeleteU2FResponse{}, nil
}

// CheckAssertion validates an assertion token. It needs no caller credentials.
func (h *TwoFactor) CheckAssertion(ctx context.Context, req *twofactor.CheckAssertionRequest) (*twofactor.CheckAssertionResponse, error) {
	assertion, err := h.assertionService.Check(ctx, req.Token)
	if err != nil {
		h.logger.Debug("TwoFactor handler: assertion rejected", "error", err.Error())
		return nil, handleError(err)
	}

	return &twofactor.CheckAssertionResponse{
		AccountID:    assertion.AccountID,
		Method:       assertion.Method,
		CredentialID: assertion.CredentialID,
		IssuedAt:     assertion.IssuedAt.Unix(),
		ExpiresAt:    assertion.ExpiresAt.Unix(),
	}, nil
}
