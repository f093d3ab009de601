package crypto

import (
	"fmt"

	"github.com/jmcleod/tagrelay/internal/util"
)

// PayloadCipher encrypts request bodies and decrypts response bodies under
// the caller's hex-encoded final key. Ciphertexts travel as base64 strings.
type PayloadCipher interface {
	Encrypt(plainText []byte, hexKey string) (string, error)
	Decrypt(cipherText string, hexKey string) ([]byte, error)
}

// ECBCipher is AES-256 in ECB mode with PKCS#7 padding, the scheme the
// upstream protocol requires. It has no IV and is deterministic.
type ECBCipher struct{}

var _ PayloadCipher = ECBCipher{}

func (ECBCipher) Encrypt(plainText []byte, hexKey string) (string, error) {
	key, err := decodeAESKey(hexKey)
	if err != nil {
		return "", err
	}
	defer util.WipeBytes(key)

	cipherText, err := util.EncryptAESECB(plainText, key)
	if err != nil {
		return "", fmt.Errorf("encrypting payload: %w", err)
	}
	return util.Base64Encode(cipherText), nil
}

func (ECBCipher) Decrypt(cipherText string, hexKey string) ([]byte, error) {
	key, err := decodeAESKey(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	defer util.WipeBytes(key)

	raw, err := util.Base64Decode(cipherText)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrDecryption, err)
	}
	plainText, err := util.DecryptAESECB(raw, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return plainText, nil
}

func decodeAESKey(hexKey string) ([]byte, error) {
	key, err := util.HexDecode(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: final key is not valid hex", ErrInvalidKey)
	}
	if len(key) != util.AESKeySize {
		util.WipeBytes(key)
		return nil, fmt.Errorf("%w: final key must decode to %d bytes, got %d", ErrInvalidKey, util.AESKeySize, len(key))
	}
	return key, nil
}
