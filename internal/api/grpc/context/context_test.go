package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/twofactor-server/internal/model"
)

func TestManager_SetAndGetCaller(t *testing.T) {
	m := NewManager()
	caller := model.Caller{AccountID: "acct", Secret: "c2VjcmV0"}
	ctx := m.SetCallerToContext(stdctx.Background(), caller)

	got, ok := m.GetCallerFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, caller, got)
}

func TestManager_GetCaller_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetCallerFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetCaller_EmptyAccount(t *testing.T) {
	m := NewManager()
	ctx := m.SetCallerToContext(stdctx.Background(), model.Caller{Secret: "c2VjcmV0"})
	_, ok := m.GetCallerFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetCaller_Overrides(t *testing.T) {
	m := NewManager()
	ctx := m.SetCallerToContext(stdctx.Background(), model.Caller{AccountID: "first"})
	ctx = m.SetCallerToContext(ctx, model.Caller{AccountID: "second"})

	got, ok := m.GetCallerFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "second", got.AccountID)
}
