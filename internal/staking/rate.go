package staking

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
)

const (
	// DefaultBasisPoints is the denominator rates are expressed against, 10000 = 100%.
	DefaultBasisPoints uint64 = 10_000
	// TierCount is the number of reward tiers a schedule holds.
	TierCount = 3
)

// Tier is a reward rate (in basis points) that applies once a stake has been
// held for at least Threshold since its last checkpoint.
type Tier struct {
	Threshold time.Duration `json:"threshold"`
	Rate      uint64        `json:"rate"`
}

// DefaultTiers returns the reference tiers of the pool. Only the first tier
// (30s -> 20%) is confirmed by observed payouts; deployments should set all
// three explicitly.
func DefaultTiers() []Tier {
	return []Tier{
		{Threshold: 30 * time.Second, Rate: 2_000},
		{Threshold: 50 * time.Second, Rate: 3_000},
		{Threshold: 365 * time.Second, Rate: 5_000},
	}
}

// Schedule resolves the elapsed time since a checkpoint to a reward rate and
// computes the reward it yields. It is immutable after construction.
type Schedule struct {
	tiers       [TierCount]Tier
	basisPoints uint64
}

func NewSchedule(tiers []Tier, basisPoints uint64) (*Schedule, error) {
	if len(tiers) != TierCount {
		return nil, fmt.Errorf("%w: expected %d tiers, got %d", ErrInvalidSchedule, TierCount, len(tiers))
	}
	if basisPoints == 0 {
		return nil, fmt.Errorf("%w: basis points must be positive", ErrInvalidSchedule)
	}

	s := &Schedule{basisPoints: basisPoints}
	for i, tier := range tiers {
		if tier.Threshold <= 0 {
			return nil, fmt.Errorf("%w: tier %d threshold must be positive", ErrInvalidSchedule, i+1)
		}
		if i > 0 && tier.Threshold <= tiers[i-1].Threshold {
			return nil, fmt.Errorf("%w: tier %d threshold must be greater than tier %d threshold",
				ErrInvalidSchedule, i+1, i)
		}
		// a decreasing rate would make earned shrink while a stake ages
		if i > 0 && tier.Rate < tiers[i-1].Rate {
			return nil, fmt.Errorf("%w: tier %d rate must not be lower than tier %d rate",
				ErrInvalidSchedule, i+1, i)
		}
		s.tiers[i] = tier
	}

	return s, nil
}

// DefaultSchedule builds a schedule from DefaultTiers and DefaultBasisPoints.
func DefaultSchedule() *Schedule {
	s, err := NewSchedule(DefaultTiers(), DefaultBasisPoints)
	if err != nil {
		panic(err)
	}
	return s
}

// Rate returns the rate in basis points for a stake held for elapsed.
// Thresholds are inclusive lower bounds.
func (s *Schedule) Rate(elapsed time.Duration) uint64 {
	for i := len(s.tiers) - 1; i >= 0; i-- {
		if elapsed >= s.tiers[i].Threshold {
			return s.tiers[i].Rate
		}
	}
	return 0
}

// Reward is staked * rate(elapsed) / basisPoints rounded down. It fails with
// ErrAmountTooLarge when staked * rate does not fit the 256 bit range.
func (s *Schedule) Reward(staked sdkmath.Int, elapsed time.Duration) (sdkmath.Int, error) {
	rate := s.Rate(elapsed)
	if rate == 0 || staked.IsNil() || !staked.IsPositive() {
		return sdkmath.ZeroInt(), nil
	}

	product, err := staked.SafeMul(sdkmath.NewIntFromUint64(rate))
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %s at %d bp: %w", ErrAmountTooLarge, staked, rate, err)
	}

	return product.Quo(sdkmath.NewIntFromUint64(s.basisPoints)), nil
}

func (s *Schedule) Tiers() []Tier {
	tiers := make([]Tier, len(s.tiers))
	copy(tiers, s.tiers[:])
	return tiers
}

func (s *Schedule) BasisPoints() uint64 {
	return s.basisPoints
}

// maxRate is the highest rate the schedule can apply.
func (s *Schedule) maxRate() uint64 {
	return s.tiers[TierCount-1].Rate
}
