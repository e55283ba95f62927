package middleware

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
)

// Metadata keys carrying the caller credentials.
const (
	APIKeyHeader    = "x-api-key"
	APISecretHeader = "x-api-secret"
)

var (
	errMissingCredentials = errors.New("missing api key or secret")
	errInvalidSecret      = errors.New("invalid api secret")
)

// KeyValidator checks that an account secret is usable as an encryption key.
type KeyValidator interface {
	ValidateKey(keyB64 string) error
}

// Authenticate reads the caller credentials from metadata and injects them into context.
type Authenticate struct {
	validator      KeyValidator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(validator KeyValidator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{validator: validator, contextManager: contextManager, logger: logger}
}

// AuthFunc extracts x-api-key and x-api-secret, rejects malformed secrets and
// returns a context carrying the caller. Whether the account exists and is
// active is decided later by the services against the store.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var key, secret string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		key = first(md, APIKeyHeader)
		secret = first(md, APISecretHeader)
	}

	caller, err := m.authenticate(key, secret)
	if err != nil {
		m.logger.Debug("Authenticate middleware: rejected call",
			"account_id", key,
			"error", err.Error())
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return m.contextManager.SetCallerToContext(ctx, caller), nil
}

func (m *Authenticate) authenticate(key, secret string) (model.Caller, error) {
	if key == "" || secret == "" {
		return model.Caller{}, errMissingCredentials
	}

	if err := m.validator.ValidateKey(secret); err != nil {
		return model.Caller{}, errInvalidSecret
	}

	return model.Caller{AccountID: key, Secret: secret}, nil
}

func first(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
