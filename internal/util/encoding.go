package util

import (
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds compatibility forms (full-width digits, ligatures) into
// their canonical equivalents.
func Normalize(s string) string {
	return norm.NFKC.String(s)
}

func HexEncode(b []byte) string {
	return hex.EncodeToString(b)
}

func HexDecode(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

func Base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func Base64Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
