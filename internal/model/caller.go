package model

import "context"

// Caller identifies the account a request acts on and carries the key that
// unlocks its stored secrets for the duration of the request.
type Caller struct {
	AccountID string
	Secret    string
}

// ContextManager stores and retrieves the request caller.
type ContextManager interface {
	SetCallerToContext(ctx context.Context, caller Caller) context.Context
	GetCallerFromContext(ctx context.Context) (Caller, bool)
}
