package staking

import (
	"math/big"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		s, err := NewSchedule(DefaultTiers(), DefaultBasisPoints)
		require.NoError(t, err)
		assert.Equal(t, DefaultTiers(), s.Tiers())
		assert.Equal(t, DefaultBasisPoints, s.BasisPoints())
	})

	cases := []struct {
		name        string
		tiers       []Tier
		basisPoints uint64
	}{
		{
			name:        "too few tiers",
			tiers:       DefaultTiers()[:2],
			basisPoints: DefaultBasisPoints,
		},
		{
			name:        "zero basis points",
			tiers:       DefaultTiers(),
			basisPoints: 0,
		},
		{
			name: "zero threshold",
			tiers: []Tier{
				{Threshold: 0, Rate: 1000},
				{Threshold: time.Minute, Rate: 2000},
				{Threshold: time.Hour, Rate: 3000},
			},
			basisPoints: DefaultBasisPoints,
		},
		{
			name: "thresholds not ascending",
			tiers: []Tier{
				{Threshold: time.Minute, Rate: 1000},
				{Threshold: time.Minute, Rate: 2000},
				{Threshold: time.Hour, Rate: 3000},
			},
			basisPoints: DefaultBasisPoints,
		},
		{
			name: "decreasing rate",
			tiers: []Tier{
				{Threshold: time.Second, Rate: 3000},
				{Threshold: time.Minute, Rate: 2000},
				{Threshold: time.Hour, Rate: 3000},
			},
			basisPoints: DefaultBasisPoints,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSchedule(tc.tiers, tc.basisPoints)
			require.ErrorIs(t, err, ErrInvalidSchedule)
			assert.Nil(t, s)
		})
	}
}

func TestScheduleRate(t *testing.T) {
	s := DefaultSchedule()

	cases := []struct {
		elapsed time.Duration
		rate    uint64
	}{
		{0, 0},
		{29 * time.Second, 0},
		{30 * time.Second, 2000},
		{31 * time.Second, 2000},
		{49 * time.Second, 2000},
		{50 * time.Second, 3000},
		{55 * time.Second, 3000},
		{364 * time.Second, 3000},
		{365 * time.Second, 5000},
		{366 * time.Second, 5000},
		{24 * time.Hour, 5000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.rate, s.Rate(tc.elapsed), "elapsed %s", tc.elapsed)
	}
}

func TestScheduleReward(t *testing.T) {
	s := DefaultSchedule()

	reward := func(t *testing.T, staked sdkmath.Int, elapsed time.Duration) sdkmath.Int {
		t.Helper()
		r, err := s.Reward(staked, elapsed)
		require.NoError(t, err)
		return r
	}

	t.Run("tier one", func(t *testing.T) {
		assert.Equal(t, "20", reward(t, sdkmath.NewInt(100), 31*time.Second).String())
	})
	t.Run("rounds down", func(t *testing.T) {
		// 7 * 2000 / 10000 = 1.4
		assert.Equal(t, "1", reward(t, sdkmath.NewInt(7), 30*time.Second).String())
		assert.True(t, reward(t, sdkmath.NewInt(4), 30*time.Second).IsZero())
	})
	t.Run("below first threshold", func(t *testing.T) {
		assert.True(t, reward(t, sdkmath.NewInt(1_000_000), 29*time.Second).IsZero())
	})
	t.Run("nil and zero staked", func(t *testing.T) {
		assert.True(t, reward(t, sdkmath.Int{}, time.Hour).IsZero())
		assert.True(t, reward(t, sdkmath.ZeroInt(), time.Hour).IsZero())
	})
	t.Run("product beyond 256 bits", func(t *testing.T) {
		maxInt := sdkmath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))

		_, err := s.Reward(maxInt, 400*time.Second)
		require.ErrorIs(t, err, ErrAmountTooLarge)

		// no rate, no multiplication
		assert.True(t, reward(t, maxInt, 10*time.Second).IsZero())
	})
	t.Run("non decreasing in elapsed time", func(t *testing.T) {
		staked := sdkmath.NewInt(int64(gofakeit.IntRange(1, 1_000_000_000)))
		prev := sdkmath.ZeroInt()
		for elapsed := time.Duration(0); elapsed <= 400*time.Second; elapsed += time.Second {
			r := reward(t, staked, elapsed)
			require.True(t, r.GTE(prev), "reward decreased at %s", elapsed)
			prev = r
		}
	})
}
