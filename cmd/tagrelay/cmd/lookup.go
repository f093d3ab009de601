package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jmcleod/tagrelay/lookup"
)

var (
	lookupPhone    string
	lookupToken    string
	lookupFinalKey string
	lookupCountry  string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Run a single lookup and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		client, err := newLookupClient(cfg, logger)
		if err != nil {
			return err
		}

		res, err := client.Check(cmd.Context(), lookup.Request{
			PhoneNumber: lookupPhone,
			Token:       lookupToken,
			FinalKey:    lookupFinalKey,
			DialCode:    lookupCountry,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVar(&lookupPhone, "phone", "", "Phone number to look up")
	lookupCmd.Flags().StringVar(&lookupToken, "token", "", "Upstream session token")
	lookupCmd.Flags().StringVar(&lookupFinalKey, "final-key", "", "Hex-encoded 32-byte AES key")
	lookupCmd.Flags().StringVar(&lookupCountry, "country", "", "Dial code for local numbers (default from TAGRELAY_DEFAULT_DIAL_CODE)")
	lookupCmd.MarkFlagRequired("phone")
	lookupCmd.MarkFlagRequired("token")
	lookupCmd.MarkFlagRequired("final-key")
}
