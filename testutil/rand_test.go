package testutil

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestContainerName(t *testing.T) {
	name := ContainerName("mongo-integration-tests")
	assert.True(t, strings.HasPrefix(name, "mongo-integration-tests-"))
	assert.Len(t, name, len("mongo-integration-tests-")+6)
	assert.Equal(t, strings.ToLower(name), name)
}

func TestRandomAddress(t *testing.T) {
	seen := make(map[common.Address]struct{})
	for range 20 {
		address := RandomAddress()
		assert.NotEqual(t, common.Address{}, address)
		seen[address] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
