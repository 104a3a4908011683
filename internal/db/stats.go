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

// UpsertPoolStats updates or inserts the pool stats snapshot
func (db *Database) UpsertPoolStats(ctx context.Context, statsDoc *model.PoolStatsDocument) error {
	filter := bson.M{"_id": statsDoc.ID}
	update := bson.M{
		"$set": bson.M{
			"total_staked":  statsDoc.TotalStaked,
			"principal":     statsDoc.Principal,
			"asset_balance": statsDoc.AssetBalance,
			"solvency_gap":  statsDoc.SolvencyGap,
			"staker_count":  statsDoc.StakerCount,
			"last_updated":  statsDoc.LastUpdated,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.PoolStatsCollection).UpdateOne(ctx, filter, update, opts)
	return err
}

func (db *Database) GetPoolStats(ctx context.Context, pool common.Address) (*model.PoolStatsDocument, error) {
	var statsDoc model.PoolStatsDocument
	err := db.collection(model.PoolStatsCollection).
		FindOne(ctx, bson.M{"_id": pool.Hex()}).
		Decode(&statsDoc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     pool.Hex(),
				Message: "pool stats not found",
			}
		}
		return nil, err
	}

	return &statsDoc, nil
}
