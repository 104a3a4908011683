package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/babylonlabs-io/staking-ledger/internal/config"
	"github.com/babylonlabs-io/staking-ledger/internal/db"
	"github.com/babylonlabs-io/staking-ledger/internal/db/model"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoUsername = "user"
	mongoPassword = "password"
	mongoDatabase = "test-database"

	// this version corresponds to docker tag for mongodb
	// it should be in sync with mongo version used in production
	mongoVersion = "7.0.5"

	// TestPaginationLimit caps history queries against StartMongo containers.
	TestPaginationLimit = 10
)

// Mongo is a throwaway mongodb container with the ledger collections and
// indexes already created. Close MUST be called to release docker resources.
type Mongo struct {
	Config *config.DbConfig
	DB     *db.Database

	raw      *mongo.Client
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

// StartMongo runs a mongodb container named after prefix and waits until the
// ledger client can ping it.
func StartMongo(prefix string) (*Mongo, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       ContainerName(prefix),
		Repository: "mongo",
		Tag:        mongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + mongoUsername,
			"MONGO_INITDB_ROOT_PASSWORD=" + mongoPassword,
			"MONGO_INITDB_DATABASE=" + mongoDatabase,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, err
	}

	m := &Mongo{
		pool:     pool,
		resource: resource,
		Config: &config.DbConfig{
			Username:           mongoUsername,
			Password:           mongoPassword,
			DbName:             mongoDatabase,
			Address:            fmt.Sprintf("mongodb://localhost:%s/", resource.GetPort("27017/tcp")),
			MaxPaginationLimit: TestPaginationLimit,
		},
	}

	// mongo takes a moment to accept connections
	err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := db.New(ctx, *m.Config)
		if err != nil {
			return err
		}
		if err := client.Ping(ctx); err != nil {
			return err
		}
		m.DB = client
		return nil
	})
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	if err := model.Setup(context.Background(), m.Config); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("failed to init mongo database: %w", err)
	}

	credential := options.Credential{Username: mongoUsername, Password: mongoPassword}
	m.raw, err = mongo.Connect(context.Background(), options.Client().ApplyURI(m.Config.Address).SetAuth(credential))
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	return m, nil
}

// Reset removes every document but keeps collections and indexes.
func (m *Mongo) Reset(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	database := m.raw.Database(m.Config.DbName)
	for _, collection := range []string{
		model.StakingEventsCollection,
		model.StakingAccountsCollection,
		model.PoolStatsCollection,
	} {
		_, err := database.Collection(collection).DeleteMany(ctx, bson.M{})
		require.NoError(t, err)
	}
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if m.raw != nil {
		_ = m.raw.Disconnect(ctx)
	}
	if m.DB != nil {
		_ = m.DB.Disconnect(ctx)
	}
	return m.pool.Purge(m.resource)
}
