package db

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/staking-ledger/internal/db/model"
	"github.com/ethereum/go-ethereum/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertStakingAccount replaces the account snapshot unless a newer one is
// already stored.
func (db *Database) UpsertStakingAccount(ctx context.Context, accountDoc *model.StakingAccountDocument) error {
	filter := bson.M{
		"_id":        accountDoc.ID,
		"updated_at": bson.M{"$lte": accountDoc.UpdatedAt},
	}
	opts := options.Replace().SetUpsert(true)

	_, err := db.collection(model.StakingAccountsCollection).ReplaceOne(ctx, filter, accountDoc, opts)
	if err != nil {
		// a newer snapshot exists: the filter missed and the upsert hit the _id
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	}
	return nil
}

func (db *Database) GetStakingAccount(ctx context.Context, account common.Address) (*model.StakingAccountDocument, error) {
	var accountDoc model.StakingAccountDocument
	err := db.collection(model.StakingAccountsCollection).
		FindOne(ctx, bson.M{"_id": account.Hex()}).
		Decode(&accountDoc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     account.Hex(),
				Message: "staking account not found",
			}
		}
		return nil, err
	}

	return &accountDoc, nil
}
