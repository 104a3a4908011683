package cli

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/config"
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-ledger/pkg"
	"github.com/spf13/cobra"
)

type rewardEstimate struct {
	Amount      sdkmath.Int `json:"amount"`
	Elapsed     string      `json:"elapsed"`
	Rate        uint64      `json:"rate"`
	BasisPoints uint64      `json:"basis_points"`
	Reward      sdkmath.Int `json:"reward"`
}

// CalculateRewardCmd prints the reward a balance earns after being held for
// the given time. It runs offline:
// ./staking-ledger calculate-reward --amount 100 --elapsed 45s
// Tiers come from the pool section of --config when that flag is set, the
// reference tiers otherwise.
func CalculateRewardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate-reward",
		Short: "Calculate the reward for a staked amount held for a duration",
		Args:  cobra.ExactArgs(0),
		RunE:  calculateReward,
	}

	cmd.Flags().String("amount", "", "Staked amount in the smallest asset unit")
	cmd.Flags().Duration("elapsed", 0, "Time since the last checkpoint, e.g. 45s or 10m")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("elapsed")

	return cmd
}

func calculateReward(cmd *cobra.Command, args []string) error {
	rawAmount, err := cmd.Flags().GetString("amount")
	if err != nil {
		return err
	}
	elapsed, err := cmd.Flags().GetDuration("elapsed")
	if err != nil {
		return err
	}

	amount, err := pkg.ParseAmount(rawAmount)
	if err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", staking.ErrNegativeAmount, amount)
	}
	if elapsed < 0 {
		return fmt.Errorf("elapsed must not be negative, got %s", elapsed)
	}

	schedule, err := loadSchedule(cmd)
	if err != nil {
		return err
	}

	reward, err := schedule.Reward(amount, elapsed)
	if err != nil {
		return err
	}

	estimate := rewardEstimate{
		Amount:      amount,
		Elapsed:     elapsed.String(),
		Rate:        schedule.Rate(elapsed),
		BasisPoints: schedule.BasisPoints(),
		Reward:      reward,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(estimate)
}

func loadSchedule(cmd *cobra.Command) (*staking.Schedule, error) {
	flag := cmd.Flag("config")
	if flag == nil || !flag.Changed {
		return staking.DefaultSchedule(), nil
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return nil, err
	}
	return cfg.Pool.Schedule()
}
