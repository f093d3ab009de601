package crypto

import "errors"

var (
	// ErrInvalidKey indicates a key that is not valid hex or has the wrong length.
	ErrInvalidKey = errors.New("invalid key")
	// ErrDecryption indicates a ciphertext that could not be decrypted under the given key.
	ErrDecryption = errors.New("decryption failed")
	// ErrMalformedKeyMaterial indicates a key-material blob that cannot be split and decoded.
	ErrMalformedKeyMaterial = errors.New("malformed key material")
)
