package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/twofactor-server/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	putErr  error
	putName string
	putBody []byte
	putOpts minioLib.PutObjectOptions

	getBody []byte
	getInfo minioLib.ObjectInfo
	getErr  error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, name string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putName = name
	f.putOpts = opts
	f.putBody, _ = io.ReadAll(r)
	if int64(len(f.putBody)) != size {
		return minioLib.UploadInfo{}, errors.New("size mismatch")
	}
	return minioLib.UploadInfo{}, f.putErr
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, minioLib.ObjectInfo, error) {
	if f.getErr != nil {
		return nil, minioLib.ObjectInfo{}, f.getErr
	}
	return io.NopCloser(bytes.NewReader(f.getBody)), f.getInfo, nil
}

func newStore(t *testing.T, api *fakeMinio) *AccountStore {
	t.Helper()
	api.bucketExists = true
	s, err := NewAccountStoreWithAPI(context.Background(), api, "accounts")
	require.NoError(t, err)
	return s
}

func TestNewAccountStoreWithAPI_BucketExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	s, err := NewAccountStoreWithAPI(context.Background(), api, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", s.bucket)
	assert.False(t, api.madeBucket)
}

func TestNewAccountStoreWithAPI_CreateBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: false}
	_, err := NewAccountStoreWithAPI(context.Background(), api, "bucket")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestNewAccountStoreWithAPI_Errors(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeMinio
	}{
		{name: "bucket exists error", api: &fakeMinio{bucketExistsErr: errors.New("boom")}},
		{name: "make bucket error", api: &fakeMinio{makeBucketErr: errors.New("fail")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewAccountStoreWithAPI(context.Background(), tt.api, "bucket")
			assert.Nil(t, s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to ensure bucket exists")
		})
	}
}

func TestAccountStore_Get(t *testing.T) {
	body, err := json.Marshal(record{
		Activated: true,
		Credentials: model.CredentialSet{
			TOTP: map[string]model.TOTPCredential{"t1": {EncryptedSecret: "n:c"}},
		},
	})
	require.NoError(t, err)

	s := newStore(t, &fakeMinio{getBody: body, getInfo: minioLib.ObjectInfo{ETag: "etag-1"}})
	acc, err := s.Get(context.Background(), "acct")
	require.NoError(t, err)
	assert.Equal(t, "acct", acc.ID)
	assert.Equal(t, "etag-1", acc.Version)
	assert.True(t, s.IsActivated(acc))
	assert.Equal(t, "n:c", acc.TOTP["t1"].EncryptedSecret)
}

func TestAccountStore_Get_Errors(t *testing.T) {
	tests := []struct {
		name    string
		api     *fakeMinio
		wantErr error
		errText string
	}{
		{
			name:    "missing object",
			api:     &fakeMinio{getErr: minioLib.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}},
			wantErr: model.ErrNotFound,
		},
		{
			name:    "transport error",
			api:     &fakeMinio{getErr: errors.New("dial tcp")},
			errText: "failed to get object",
		},
		{
			name:    "invalid body",
			api:     &fakeMinio{getBody: []byte("nope")},
			errText: "failed to decode account",
		},
		{
			name:    "corrupt credential",
			api:     &fakeMinio{getBody: []byte(`{"credentials":{"u2f":{"u1":{"encryptedAppId":"a:b"}}}}`)},
			wantErr: model.ErrCorruptCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newStore(t, tt.api).Get(context.Background(), "acct")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestAccountStore_Put(t *testing.T) {
	acc := model.Account{
		ID:        "acct",
		Activated: true,
		Version:   "etag-1",
		U2F: map[string]model.U2FCredential{
			"u1": {EncryptedAppID: "a:b", State: model.U2FPending{EncryptedRegistrationRequest: "r:q"}},
		},
	}

	t.Run("conditional write", func(t *testing.T) {
		api := &fakeMinio{}
		require.NoError(t, newStore(t, api).Put(context.Background(), acc))

		assert.Equal(t, "accounts/acct.json", api.putName)
		assert.Equal(t, "application/json", api.putOpts.ContentType)
		assert.Equal(t, `"etag-1"`, api.putOpts.Header().Get("If-Match"))

		var rec record
		require.NoError(t, json.Unmarshal(api.putBody, &rec))
		assert.Equal(t, "r:q", rec.Credentials.U2F["u1"].EncryptedRegistrationRequest)
	})

	t.Run("etag moved", func(t *testing.T) {
		api := &fakeMinio{putErr: minioLib.ErrorResponse{Code: "PreconditionFailed", StatusCode: http.StatusPreconditionFailed}}
		assert.ErrorIs(t, newStore(t, api).Put(context.Background(), acc), model.ErrConflict)
	})

	t.Run("object gone", func(t *testing.T) {
		api := &fakeMinio{putErr: minioLib.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}}
		assert.ErrorIs(t, newStore(t, api).Put(context.Background(), acc), model.ErrConflict)
	})

	t.Run("upload error", func(t *testing.T) {
		api := &fakeMinio{putErr: errors.New("reset")}
		err := newStore(t, api).Put(context.Background(), acc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})

	t.Run("missing version", func(t *testing.T) {
		err := newStore(t, &fakeMinio{}).Put(context.Background(), model.Account{ID: "acct"})
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

func TestAccountStore_Create(t *testing.T) {
	api := &fakeMinio{}
	require.NoError(t, newStore(t, api).Create(context.Background(), "acct", true))
	assert.Equal(t, "*", api.putOpts.Header().Get("If-None-Match"))

	api = &fakeMinio{putErr: minioLib.ErrorResponse{Code: "PreconditionFailed"}}
	assert.ErrorIs(t, newStore(t, api).Create(context.Background(), "acct", true), model.ErrAlreadyExists)
}
