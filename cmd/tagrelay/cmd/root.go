package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmcleod/tagrelay/crypto"
	"github.com/jmcleod/tagrelay/internal/config"
	"github.com/jmcleod/tagrelay/internal/logging"
	"github.com/jmcleod/tagrelay/lookup"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var keyMaterial string

var rootCmd = &cobra.Command{
	Use:   "tagrelay",
	Short: "tagrelay looks up the community tags attached to a phone number",
	Long: `A relay that signs, encrypts and forwards phone-number lookups to the
upstream tag service and returns the decrypted tags as plain JSON.
Settings are read from TAGRELAY_* environment variables; flags override them.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&keyMaterial, "key-material", "", "Hex key-material blob (overrides TAGRELAY_KEY_MATERIAL)")
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command, extra ...func(*config.Config)) (*config.Config, error) {
	var overrides []func(*config.Config)
	if cmd.Flags().Changed("key-material") {
		overrides = append(overrides, func(c *config.Config) { c.KeyMaterial = keyMaterial })
	}
	overrides = append(overrides, extra...)
	return config.Load(overrides...)
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return logging.New(os.Stderr, cfg.LogFormat, lvl), nil
}

// newLookupClient decodes the key material and builds a client from cfg.
func newLookupClient(cfg *config.Config, logger *slog.Logger) (*lookup.Client, error) {
	keys, err := crypto.DecodeKeyMaterial(cfg.KeyMaterial)
	if err != nil {
		return nil, err
	}
	return lookup.NewClient(keys,
		lookup.WithLogger(logger),
		lookup.WithTimeout(cfg.UpstreamTimeout),
		lookup.WithRegion(cfg.UpstreamRegion),
		lookup.WithDeviceID(cfg.DeviceID),
		lookup.WithDefaultDialCode(cfg.DefaultDialCode),
		lookup.WithBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		lookup.WithMaskedNumbers(cfg.LogMaskNumbers),
	), nil
}
