package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/babylonlabs-io/staking-ledger/pkg"
	"github.com/spf13/cobra"
)

const (
	defaultConfigFileName = "config.yml"
	// configPathEnv overrides the default config location, the --config flag still wins
	configPathEnv = "STAKING_CONFIG"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:   "staking-ledger",
		Short: "Time tiered staking pool with a persisted event history",
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv(configPathEnv, getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(CalculateRewardCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
