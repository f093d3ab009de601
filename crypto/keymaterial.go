package crypto

import (
	"fmt"
	"net/url"

	"github.com/awnumar/memguard"

	"github.com/jmcleod/tagrelay/internal/util"
)

const (
	// SigningKeyHexLen is the offset at which a key-material blob splits.
	SigningKeyHexLen = 128
	// SigningKeySize is the decoded length of the signing key half.
	SigningKeySize = SigningKeyHexLen / 2
)

// KeyMaterial is the decoded form of an obfuscated key-material blob: the
// HMAC signing key and the upstream endpoint it belongs to. The signing key
// lives in a memguard enclave and is only decrypted while a signature is
// being computed.
type KeyMaterial struct {
	signingKey *memguard.Enclave
	endpoint   string
}

// DecodeKeyMaterial splits blob at SigningKeyHexLen and hex-decodes both
// halves. The first half is the signing key, the second the endpoint URL.
func DecodeKeyMaterial(blob string) (*KeyMaterial, error) {
	if len(blob) <= SigningKeyHexLen {
		return nil, fmt.Errorf("%w: blob is %d hex chars, need more than %d", ErrMalformedKeyMaterial, len(blob), SigningKeyHexLen)
	}

	key, err := util.HexDecode(blob[:SigningKeyHexLen])
	if err != nil {
		return nil, fmt.Errorf("%w: signing key: %v", ErrMalformedKeyMaterial, err)
	}
	rawURL, err := util.HexDecode(blob[SigningKeyHexLen:])
	if err != nil {
		util.WipeBytes(key)
		return nil, fmt.Errorf("%w: endpoint: %v", ErrMalformedKeyMaterial, err)
	}

	endpoint := string(rawURL)
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		util.WipeBytes(key)
		return nil, fmt.Errorf("%w: endpoint is not an absolute http(s) URL", ErrMalformedKeyMaterial)
	}

	return &KeyMaterial{
		signingKey: memguard.NewEnclave(key),
		endpoint:   endpoint,
	}, nil
}

// EncodeKeyMaterial builds a blob that DecodeKeyMaterial accepts.
func EncodeKeyMaterial(signingKey []byte, endpoint string) (string, error) {
	if len(signingKey) != SigningKeySize {
		return "", fmt.Errorf("%w: signing key must be %d bytes, got %d", ErrInvalidKey, SigningKeySize, len(signingKey))
	}
	blob := util.HexEncode(signingKey) + util.HexEncode([]byte(endpoint))
	if _, err := DecodeKeyMaterial(blob); err != nil {
		return "", err
	}
	return blob, nil
}

// Endpoint returns the upstream URL recovered from the blob.
func (k *KeyMaterial) Endpoint() string {
	return k.endpoint
}

// Sign computes the request signature for payload at timestampMillis using
// the sealed signing key.
func (k *KeyMaterial) Sign(timestampMillis int64, payload []byte) (string, error) {
	buf, err := k.signingKey.Open()
	if err != nil {
		return "", fmt.Errorf("opening signing key: %w", err)
	}
	defer buf.Destroy()
	return Sign(timestampMillis, payload, buf.Bytes())
}
