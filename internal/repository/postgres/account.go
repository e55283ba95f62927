package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/twofactor-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AccountRepository stores accounts in the accounts table. The version column
// guards Put against lost updates.
type AccountRepository struct {
	db dbtx
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) Create(ctx context.Context, id string, activated bool) error {
	const query = `INSERT INTO accounts (id, activated) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`

	cmd, err := r.db.Exec(ctx, query, id, activated)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrAlreadyExists
	}
	return nil
}

func (r *AccountRepository) Get(ctx context.Context, id string) (model.Account, error) {
	const query = `SELECT activated, credentials, version FROM accounts WHERE id = $1`

	var (
		acc     = model.Account{ID: id}
		raw     []byte
		version int64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&acc.Activated, &raw, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	var set model.CredentialSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return model.Account{}, fmt.Errorf("failed to decode credentials: %w", err)
	}
	if err := acc.SetCredentials(set); err != nil {
		return model.Account{}, fmt.Errorf("failed to decode credentials: %w", err)
	}
	acc.Version = strconv.FormatInt(version, 10)

	return acc, nil
}

func (r *AccountRepository) IsActivated(account model.Account) bool {
	return account.Activated
}

func (r *AccountRepository) Put(ctx context.Context, account model.Account) error {
	const query = `UPDATE accounts SET credentials = $2, version = version + 1, updated_at = NOW()
			  WHERE id = $1 AND version = $3`

	version, err := strconv.ParseInt(account.Version, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid account version %q: %w", account.Version, err)
	}

	raw, err := json.Marshal(account.CredentialSet())
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	cmd, err := r.db.Exec(ctx, query, account.ID, raw, version)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrConflict
	}
	return nil
}
