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

func (db *Database) SaveStakingEvent(ctx context.Context, eventDoc *model.StakingEventDocument) error {
	_, err := db.collection(model.StakingEventsCollection).InsertOne(ctx, eventDoc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     eventDoc.ID,
						Message: "staking event already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetStakingEventsByAccount(
	ctx context.Context, account common.Address, limit int64,
) ([]model.StakingEventDocument, error) {
	if limit <= 0 || limit > db.cfg.MaxPaginationLimit {
		limit = db.cfg.MaxPaginationLimit
	}

	filter := bson.M{"account": account.Hex()}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.StakingEventsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []model.StakingEventDocument
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}
