package context

import (
	"context"

	"github.com/dtroode/twofactor-server/internal/model"
)

type callerKey struct{}

// Manager stores the authenticated caller in a request context.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetCallerToContext returns a copy of ctx carrying caller.
func (m *Manager) SetCallerToContext(ctx context.Context, caller model.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCallerFromContext returns the caller set by the auth interceptor.
// The second value is false when no caller was set or its account id is empty.
func (m *Manager) GetCallerFromContext(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(model.Caller)
	if !ok || caller.AccountID == "" {
		return model.Caller{}, false
	}
	return caller, true
}
