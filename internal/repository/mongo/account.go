package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dtroode/twofactor-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
}

type document struct {
	ID          string              `bson:"_id"`
	Activated   bool                `bson:"activated"`
	Credentials model.CredentialSet `bson:"credentials"`
	Version     int64               `bson:"version"`
}

// AccountRepository keeps one document per account. Writes replace the
// document only if its version field is unchanged.
type AccountRepository struct {
	coll collection
}

func NewAccountRepository(db *mongo.Database, name string) *AccountRepository {
	return &AccountRepository{coll: db.Collection(name)}
}

func (r *AccountRepository) Create(ctx context.Context, id string, activated bool) error {
	_, err := r.coll.InsertOne(ctx, document{
		ID:          id,
		Activated:   activated,
		Credentials: model.Account{}.CredentialSet(),
		Version:     1,
	})
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Get(ctx context.Context, id string) (model.Account, error) {
	var doc document
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Account{}, model.ErrNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	acc := model.Account{
		ID:        doc.ID,
		Activated: doc.Activated,
		Version:   strconv.FormatInt(doc.Version, 10),
	}
	if err := acc.SetCredentials(doc.Credentials); err != nil {
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

	filter := bson.D{
		{Key: "_id", Value: account.ID},
		{Key: "version", Value: version},
	}
	res, err := r.coll.ReplaceOne(ctx, filter, document{
		ID:          account.ID,
		Activated:   account.Activated,
		Credentials: account.CredentialSet(),
		Version:     version + 1,
	})
	if err != nil {
		return fmt.Errorf("failed to replace account: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrConflict
	}
	return nil
}
