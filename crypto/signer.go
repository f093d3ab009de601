package crypto

import (
	"fmt"
	"strconv"

	"github.com/jmcleod/tagrelay/internal/util"
)

// SignatureInput returns the exact bytes covered by a request signature:
// the decimal timestamp, a hyphen, then the payload as transmitted.
func SignatureInput(timestampMillis int64, payload []byte) []byte {
	ts := strconv.FormatInt(timestampMillis, 10)
	msg := make([]byte, 0, len(ts)+1+len(payload))
	msg = append(msg, ts...)
	msg = append(msg, '-')
	return append(msg, payload...)
}

// Sign returns base64(HMAC-SHA256(key, "{timestampMillis}-{payload}")).
func Sign(timestampMillis int64, payload, key []byte) (string, error) {
	if len(key) == 0 {
		return "", fmt.Errorf("%w: empty signing key", ErrInvalidKey)
	}
	return util.Base64Encode(util.HMACSHA256(key, SignatureInput(timestampMillis, payload))), nil
}

// SignHex is Sign with a hex-encoded key.
func SignHex(timestampMillis int64, payload []byte, hexKey string) (string, error) {
	key, err := util.HexDecode(hexKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	defer util.WipeBytes(key)
	return Sign(timestampMillis, payload, key)
}
