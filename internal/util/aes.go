package util

import (
	"bytes"
	"crypto/aes"
	"errors"
	"fmt"
)

const (
	AESKeySize = 32
)

// ErrInvalidPadding is returned when a decrypted plaintext does not end in
// valid PKCS#7 padding.
var ErrInvalidPadding = errors.New("invalid PKCS#7 padding")

// EncryptAESECB pads plainText with PKCS#7 and encrypts it block by block
// under rawKey with no IV. This matches OpenSSL's aes-256-ecb with
// OPENSSL_RAW_DATA.
func EncryptAESECB(plainText, rawKey []byte) ([]byte, error) {
	if len(rawKey) != AESKeySize {
		return nil, fmt.Errorf("invalid AES key size: got %d, want %d", len(rawKey), AESKeySize)
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	padded := PKCS7Pad(plainText, aes.BlockSize)
	cipherText := make([]byte, len(padded))
	for off := 0; off < len(padded); off += aes.BlockSize {
		block.Encrypt(cipherText[off:off+aes.BlockSize], padded[off:off+aes.BlockSize])
	}

	return cipherText, nil
}

// DecryptAESECB is the inverse of EncryptAESECB.
func DecryptAESECB(cipherText, rawKey []byte) ([]byte, error) {
	if len(rawKey) != AESKeySize {
		return nil, fmt.Errorf("invalid AES key size: got %d, want %d", len(rawKey), AESKeySize)
	}
	if len(cipherText) == 0 || len(cipherText)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a positive multiple of %d", len(cipherText), aes.BlockSize)
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	plainText := make([]byte, len(cipherText))
	for off := 0; off < len(cipherText); off += aes.BlockSize {
		block.Decrypt(plainText[off:off+aes.BlockSize], cipherText[off:off+aes.BlockSize])
	}

	unpadded, err := PKCS7Unpad(plainText, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("decrypting ciphertext: %w", err)
	}

	return unpadded, nil
}

// PKCS7Pad always appends between 1 and blockSize bytes.
func PKCS7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func PKCS7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrInvalidPadding
		}
	}
	return b[:len(b)-n], nil
}
