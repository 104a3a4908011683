package model

import (
	"context"
	"fmt"
	"time"

	"github.com/babylonlabs-io/staking-ledger/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StakingEventsCollection   = "staking_events"
	StakingAccountsCollection = "staking_accounts"
	PoolStatsCollection       = "pool_stats"
)

type index struct {
	Indexes bson.D
	Unique  bool
}

var collections = map[string][]index{
	StakingEventsCollection: {
		{Indexes: bson.D{{Key: "account", Value: 1}, {Key: "timestamp", Value: -1}}, Unique: false},
		{Indexes: bson.D{{Key: "type", Value: 1}}, Unique: false},
	},
	StakingAccountsCollection: {
		{Indexes: bson.D{{Key: "state", Value: 1}}, Unique: false},
	},
	PoolStatsCollection: {{Indexes: bson.D{}}},
}

// Setup creates the collections and their indexes. It is safe to run on
// every start.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to disconnect setup client")
		}
	}()

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Access a database and create collections.
	database := client.Database(cfg.DbName)

	// Create collections.
	for collection := range collections {
		createCollection(ctx, database, collection)
	}

	for name, idxs := range collections {
		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("collections and indexes created successfully")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) {
	// Check if the collection already exists.
	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "_id", Value: 1}},
	}); err != nil {
		log.Ctx(ctx).Error().Err(err).Msgf("failed to create collection: %s", collectionName)
		return
	}

	log.Ctx(ctx).Debug().Msgf("collection maybe created successfully: %s", collectionName)
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	if len(idx.Indexes) == 0 {
		return nil
	}

	index := mongo.IndexModel{
		Keys:    idx.Indexes,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	log.Ctx(ctx).Debug().Msgf("index created successfully on collection: %s", collectionName)
	return nil
}
