package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmcleod/tagrelay/crypto"
	"github.com/jmcleod/tagrelay/internal/config"
	"github.com/jmcleod/tagrelay/internal/util"
)

var (
	encodeSigningKey string
	encodeURL        string
)

var keyMaterialCmd = &cobra.Command{
	Use:   "keymaterial",
	Short: "Build or inspect key-material blobs",
}

var keyMaterialEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a key-material blob from a signing key and endpoint URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := encodeBlob(encodeSigningKey, encodeURL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), blob)
		return nil
	},
}

var keyMaterialInspectCmd = &cobra.Command{
	Use:   "inspect [BLOB]",
	Short: "Decode a key-material blob and print its endpoint",
	Long: `Decodes the blob given as an argument, with --key-material, or in
TAGRELAY_KEY_MATERIAL, in that order. The signing key is never printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blob := resolveBlob(cmd, args)
		if blob == "" {
			return errors.New("no key material: pass a blob, --key-material or set " + config.Prefix + "_KEY_MATERIAL")
		}
		info, err := inspectBlob(blob)
		if err != nil {
			return err
		}
		return printJSON(cmd, info)
	},
}

type blobInfo struct {
	Endpoint       string `json:"endpoint"`
	SigningKeySize int    `json:"signing_key_bytes"`
	BlobHexLength  int    `json:"blob_hex_length"`
}

// encodeBlob builds a blob for endpoint. An empty signingKeyHex generates a
// random key, which is enough to drive a mock upstream.
func encodeBlob(signingKeyHex, endpoint string) (string, error) {
	var (
		key []byte
		err error
	)
	if signingKeyHex = strings.TrimSpace(signingKeyHex); signingKeyHex == "" {
		key, err = util.RandomBytes(crypto.SigningKeySize)
	} else if key, err = util.HexDecode(signingKeyHex); err != nil {
		err = fmt.Errorf("%w: signing key is not hex", crypto.ErrInvalidKey)
	}
	if err != nil {
		return "", err
	}
	defer util.WipeBytes(key)
	return crypto.EncodeKeyMaterial(key, strings.TrimSpace(endpoint))
}

func inspectBlob(blob string) (blobInfo, error) {
	blob = strings.TrimSpace(blob)
	km, err := crypto.DecodeKeyMaterial(blob)
	if err != nil {
		return blobInfo{}, err
	}
	return blobInfo{
		Endpoint:       km.Endpoint(),
		SigningKeySize: crypto.SigningKeySize,
		BlobHexLength:  len(blob),
	}, nil
}

func resolveBlob(cmd *cobra.Command, args []string) string {
	switch {
	case len(args) == 1:
		return args[0]
	case cmd.Flags().Changed("key-material"):
		return keyMaterial
	default:
		return os.Getenv(config.Prefix + "_KEY_MATERIAL")
	}
}

func init() {
	rootCmd.AddCommand(keyMaterialCmd)
	keyMaterialCmd.AddCommand(keyMaterialEncodeCmd, keyMaterialInspectCmd)

	keyMaterialEncodeCmd.Flags().StringVar(&encodeSigningKey, "signing-key", "", "Hex-encoded 64-byte HMAC signing key (random if omitted)")
	keyMaterialEncodeCmd.Flags().StringVar(&encodeURL, "url", "", "Absolute upstream endpoint URL")
	keyMaterialEncodeCmd.MarkFlagRequired("url")
}
