package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/twofactor-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

const defaultKeyPrefix = "twofactor:account:"

type record struct {
	Activated   bool                `json:"activated"`
	Credentials model.CredentialSet `json:"credentials"`
	Version     int64               `json:"version"`
}

// AccountRepository stores each account as a JSON string. Put runs inside
// WATCH/MULTI so a write racing with another one fails the transaction.
type AccountRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewAccountRepository(client redis.UniversalClient, prefix string) *AccountRepository {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &AccountRepository{client: client, prefix: prefix}
}

func (r *AccountRepository) key(id string) string {
	return r.prefix + id
}

func (r *AccountRepository) Create(ctx context.Context, id string, activated bool) error {
	raw, err := json.Marshal(record{
		Activated:   activated,
		Credentials: model.Account{}.CredentialSet(),
		Version:     1,
	})
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(id), raw, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	if !ok {
		return model.ErrAlreadyExists
	}
	return nil
}

func (r *AccountRepository) Get(ctx context.Context, id string) (model.Account, error) {
	rec, err := load(ctx, r.client, r.key(id))
	if err != nil {
		return model.Account{}, err
	}

	acc := model.Account{
		ID:        id,
		Activated: rec.Activated,
		Version:   strconv.FormatInt(rec.Version, 10),
	}
	if err := acc.SetCredentials(rec.Credentials); err != nil {
		return model.Account{}, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return acc, nil
}

func (r *AccountRepository) IsActivated(account model.Account) bool {
	return account.Activated
}

func (r *AccountRepository) Put(ctx context.Context, account model.Account) error {
	version, err := strconv.ParseInt(account.Version, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid account version %q: %w", account.Version, err)
	}

	key := r.key(account.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := load(ctx, tx, key)
		if err != nil {
			return err
		}
		if current.Version != version {
			return model.ErrConflict
		}

		raw, err := json.Marshal(record{
			Activated:   current.Activated,
			Credentials: account.CredentialSet(),
			Version:     version + 1,
		})
		if err != nil {
			return fmt.Errorf("failed to encode account: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, 0)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrConflict
	}
	return err
}

func load(ctx context.Context, c getter, key string) (record, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return record{}, model.ErrNotFound
	}
	if err != nil {
		return record{}, fmt.Errorf("failed to get account: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return record{}, fmt.Errorf("failed to decode account: %w", err)
	}
	return rec, nil
}
