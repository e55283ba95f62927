package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/twofactor-server/internal/encryption"
	"github.com/dtroode/twofactor-server/internal/model"
	"github.com/dtroode/twofactor-server/internal/qrcode"
	"github.com/dtroode/twofactor-server/internal/repository/memory"
	"github.com/dtroode/twofactor-server/internal/testutil"
	"github.com/dtroode/twofactor-server/internal/token"
	"github.com/dtroode/twofactor-server/internal/u2f"
)

const (
	testAccountID = "4d0c6f43-api-key"
	testAppID     = "https://example.com"
)

var (
	testSecret  = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	otherSecret = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{9}, 32))
	testNow     = time.Date(2024, 5, 1, 12, 0, 15, 0, time.UTC)
)

type fixture struct {
	store      *memory.Store
	caller     model.Caller
	assertions *Assertions
	totp       *TOTP
	u2f        *U2F
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.Create(context.Background(), testAccountID, true))

	log := testutil.MakeNoopLogger()
	assertions := NewAssertions(token.NewJWT("assertion-secret", time.Minute), log)
	enc := encryption.NewCTR()

	return &fixture{
		store:      store,
		caller:     model.Caller{AccountID: testAccountID, Secret: testSecret},
		assertions: assertions,
		totp: NewTOTP(store, enc, qrcode.NewRenderer(64), assertions, log,
			WithClock(func() time.Time { return testNow })),
		u2f: NewU2F(store, enc, u2f.NewProtocol(u2f.Config{}), assertions, log),
	}
}

func (f *fixture) account(t *testing.T) model.Account {
	t.Helper()
	acc, err := f.store.Get(context.Background(), testAccountID)
	require.NoError(t, err)
	return acc
}
