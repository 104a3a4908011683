//go:build integration

package queue_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/config"
	"github.com/babylonlabs-io/staking-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
	"github.com/babylonlabs-io/staking-ledger/testutil"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	rabbitUser    = "user"
	rabbitPass    = "password"
	rabbitVersion = "3.13-management"
)

var (
	testQueueConfig *config.QueueConfig
	rabbitResource  *dockertest.Resource
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("failed to connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       testutil.ContainerName("rabbitmq-integration-tests"),
		Repository: "rabbitmq",
		Tag:        rabbitVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitPass,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("failed to start rabbitmq: %v", err)
	}
	rabbitResource = resource

	testQueueConfig = &config.QueueConfig{
		User:           rabbitUser,
		Password:       rabbitPass,
		Url:            fmt.Sprintf("localhost:%s", resource.GetPort("5672/tcp")),
		Exchange:       "staking-events",
		PublishTimeout: 5 * time.Second,
	}

	pool.MaxWait = 2 * time.Minute
	err = pool.Retry(func() error {
		conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s", rabbitUser, rabbitPass, testQueueConfig.Url))
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("rabbitmq did not come up: %v", err)
	}

	code := m.Run()
	if err := pool.Purge(resource); err != nil {
		log.Fatalf("failed to purge resource: %v", err)
	}

	os.Exit(code)
}

func TestPushStakingEvent(t *testing.T) {
	qm, err := queue.NewQueueManager(testQueueConfig, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, qm.Start())
	t.Cleanup(qm.Shutdown)

	deliveries := bindQueue(t, types.EventUnStaked.RoutingKey())

	ev := &staking.Event{
		ID:            "evt-1",
		Type:          types.EventUnStaked,
		Account:       testutil.RandomAddress(),
		Amount:        sdkmath.NewInt(130),
		Reward:        sdkmath.NewInt(30),
		Principal:     sdkmath.NewInt(100),
		StakedBalance: sdkmath.ZeroInt(),
		TotalStaked:   sdkmath.ZeroInt(),
		Timestamp:     1_700_000_055,
	}
	require.NoError(t, qm.PushStakingEvent(t.Context(), ev))

	select {
	case d := <-deliveries:
		assert.Equal(t, "evt-1", d.MessageId)
		assert.Equal(t, "UnStaked", d.Type)

		var got staking.Event
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, ev.Account, got.Account)
		assert.Equal(t, "130", got.Amount.String())
		assert.Equal(t, "100", got.Principal.String())
	case <-time.After(10 * time.Second):
		t.Fatal("event was not delivered")
	}

	// events of other types are not routed to this binding
	ev.ID = "evt-2"
	ev.Type = types.EventStaked
	require.NoError(t, qm.PushStakingEvent(t.Context(), ev))
	select {
	case d := <-deliveries:
		t.Fatalf("unexpected delivery %s", d.MessageId)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestPushAfterBrokerClosesConnection(t *testing.T) {
	qm, err := queue.NewQueueManager(testQueueConfig, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, qm.Start())
	t.Cleanup(qm.Shutdown)

	ev := &staking.Event{
		ID:            "evt-reconnect-1",
		Type:          types.EventWithdraw,
		Account:       testutil.RandomAddress(),
		Amount:        sdkmath.NewInt(10),
		Reward:        sdkmath.ZeroInt(),
		Principal:     sdkmath.NewInt(10),
		StakedBalance: sdkmath.NewInt(90),
		TotalStaked:   sdkmath.NewInt(90),
		Timestamp:     1_700_000_010,
	}
	require.NoError(t, qm.PushStakingEvent(t.Context(), ev))

	var stderr bytes.Buffer
	code, err := rabbitResource.Exec(
		[]string{"rabbitmqctl", "close_all_connections", "--global", "integration test"},
		dockertest.ExecOptions{StdErr: &stderr},
	)
	require.NoError(t, err)
	require.Zero(t, code, stderr.String())

	// the client notices the close asynchronously, a publish racing it may fail once
	require.Eventually(t, func() bool {
		return qm.PushStakingEvent(t.Context(), ev) == nil
	}, 15*time.Second, 200*time.Millisecond)

	deliveries := bindQueue(t, types.EventWithdraw.RoutingKey())
	ev.ID = "evt-reconnect-2"
	require.NoError(t, qm.PushStakingEvent(t.Context(), ev))

	select {
	case d := <-deliveries:
		assert.Equal(t, "evt-reconnect-2", d.MessageId)
	case <-time.After(10 * time.Second):
		t.Fatal("event was not delivered after reconnect")
	}
}

func TestPushAfterStop(t *testing.T) {
	qm, err := queue.NewQueueManager(testQueueConfig, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, qm.Start())
	require.NoError(t, qm.Stop())

	err = qm.PushStakingEvent(t.Context(), &staking.Event{
		ID:     "evt-stopped",
		Type:   types.EventStaked,
		Amount: sdkmath.NewInt(1),
	})
	require.ErrorIs(t, err, queue.ErrNotStarted)
}

func TestStartIsIdempotent(t *testing.T) {
	qm, err := queue.NewQueueManager(testQueueConfig, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, qm.Start())
	require.NoError(t, qm.Start())
	require.NoError(t, qm.Stop())
	require.NoError(t, qm.Stop())
}

func bindQueue(t *testing.T, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s", rabbitUser, rabbitPass, testQueueConfig.Url))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)

	// the exchange is declared by Start, this only adds an exclusive queue bound to it
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, routingKey, testQueueConfig.Exchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	return deliveries
}
