package testutil

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/ethereum/go-ethereum/common"
)

// RandomAddress returns a random non-zero account address.
func RandomAddress() common.Address {
	return common.BytesToAddress([]byte(gofakeit.LetterN(common.AddressLength)))
}
