//go:build integration

package services

import (
	"log"
	"os"
	"testing"

	"github.com/babylonlabs-io/staking-ledger/internal/db"
	"github.com/babylonlabs-io/staking-ledger/testutil"
)

var (
	testMongo *testutil.Mongo
	testDB    *db.Database
)

func TestMain(m *testing.M) {
	var err error
	testMongo, err = testutil.StartMongo("mongo-integration-tests-services")
	if err != nil {
		log.Fatalf("failed to setup mongo container: %v", err)
	}
	testDB = testMongo.DB

	// integration tests run on this line
	code := m.Run()
	if err := testMongo.Close(); err != nil {
		log.Fatalf("failed to purge resource: %v", err)
	}

	os.Exit(code)
}

func resetDatabase(t *testing.T) {
	testMongo.Reset(t)
}
