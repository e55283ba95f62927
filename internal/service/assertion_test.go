package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/twofactor-server/internal/mocks"
	"github.com/dtroode/twofactor-server/internal/model"
	"github.com/dtroode/twofactor-server/internal/testutil"
	"github.com/dtroode/twofactor-server/internal/token"
)

func TestAssertions_IssueAndCheck(t *testing.T) {
	a := NewAssertions(token.NewJWT("secret", time.Minute), testutil.MakeNoopLogger())

	tok, err := a.Issue("acct", model.MethodTOTP, "cid")
	require.NoError(t, err)

	got, err := a.Check(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "acct", got.AccountID)
	assert.Equal(t, model.MethodTOTP, got.Method)
	assert.Equal(t, "cid", got.CredentialID)
}

func TestAssertions_Check_Rejects(t *testing.T) {
	a := NewAssertions(token.NewJWT("secret", time.Minute), testutil.MakeNoopLogger())
	foreign, err := NewAssertions(token.NewJWT("other", time.Minute), testutil.MakeNoopLogger()).Issue("acct", model.MethodU2F, "cid")
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"foreign secret": foreign,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := a.Check(context.Background(), tok)
			assert.ErrorIs(t, err, model.ErrUnauthorized)
		})
	}
}

func TestAssertions_Issue_Error(t *testing.T) {
	tm := mocks.NewTokenManager(t)
	tm.On("GenerateAssertionToken", model.Assertion{AccountID: "acct", Method: model.MethodTOTP, CredentialID: "cid"}).
		Return("", errors.New("sign failed"))

	_, err := NewAssertions(tm, testutil.MakeNoopLogger()).Issue("acct", model.MethodTOTP, "cid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign failed")
}
