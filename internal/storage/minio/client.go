package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/twofactor-server/internal/model"
)

const (
	objectPrefix = "accounts/"
	contentType  = "application/json"

	codeNoSuchKey          = "NoSuchKey"
	codePreconditionFailed = "PreconditionFailed"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, minio.ObjectInfo, error)
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// GetObject stats the object before handing it out so a missing key fails
// here and the ETag of the body being read is known.
func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, minio.ObjectInfo, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, minio.ObjectInfo{}, err
	}
	return obj, info, nil
}

var _ model.AccountStore = (*AccountStore)(nil)

type record struct {
	Activated   bool                `json:"activated"`
	Credentials model.CredentialSet `json:"credentials"`
}

// AccountStore keeps one JSON object per account and uses the object ETag
// as the account version.
type AccountStore struct {
	api    minioAPI
	bucket string
}

// Options holds the MinIO connection settings.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Connect builds a *minio.Client from opts and returns a ready store.
func Connect(ctx context.Context, opts Options) (*AccountStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return NewAccountStore(ctx, client, opts.Bucket)
}

// NewAccountStore creates a store on top of a real *minio.Client instance.
func NewAccountStore(ctx context.Context, client *minio.Client, bucket string) (*AccountStore, error) {
	return NewAccountStoreWithAPI(ctx, minioClientWrapper{c: client}, bucket)
}

// NewAccountStoreWithAPI allows injecting a mockable API (used in tests).
func NewAccountStoreWithAPI(ctx context.Context, api minioAPI, bucket string) (*AccountStore, error) {
	s := &AccountStore{
		api:    api,
		bucket: bucket,
	}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return s, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (s *AccountStore) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func objectName(id string) string {
	return objectPrefix + id + ".json"
}

// Create stores a fresh account unless an object for id already exists.
func (s *AccountStore) Create(ctx context.Context, id string, activated bool) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	opts.SetMatchETagExcept("*")

	err := s.put(ctx, id, record{Activated: activated, Credentials: model.Account{}.CredentialSet()}, opts)
	if minio.ToErrorResponse(errors.Unwrap(err)).Code == codePreconditionFailed {
		return model.ErrAlreadyExists
	}
	return err
}

func (s *AccountStore) Get(ctx context.Context, id string) (model.Account, error) {
	body, info, err := s.api.GetObject(ctx, s.bucket, objectName(id), minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == codeNoSuchKey {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get object: %w", err)
	}
	defer body.Close()

	var rec record
	if err := json.NewDecoder(body).Decode(&rec); err != nil {
		return model.Account{}, fmt.Errorf("failed to decode account: %w", err)
	}

	acc := model.Account{ID: id, Activated: rec.Activated, Version: info.ETag}
	if err := acc.SetCredentials(rec.Credentials); err != nil {
		return model.Account{}, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return acc, nil
}

func (s *AccountStore) IsActivated(account model.Account) bool {
	return account.Activated
}

// Put overwrites the account object only while its ETag still equals
// account.Version. A vanished object is reported as a conflict.
func (s *AccountStore) Put(ctx context.Context, account model.Account) error {
	if account.Version == "" {
		return fmt.Errorf("missing account version: %w", model.ErrConflict)
	}

	opts := minio.PutObjectOptions{ContentType: contentType}
	opts.SetMatchETag(account.Version)

	err := s.put(ctx, account.ID, record{Activated: account.Activated, Credentials: account.CredentialSet()}, opts)
	switch minio.ToErrorResponse(errors.Unwrap(err)).Code {
	case codePreconditionFailed, codeNoSuchKey:
		return model.ErrConflict
	}
	return err
}

func (s *AccountStore) put(ctx context.Context, id string, rec record, opts minio.PutObjectOptions) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}

	_, err = s.api.PutObject(ctx, s.bucket, objectName(id), bytes.NewReader(raw), int64(len(raw)), opts)
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}
