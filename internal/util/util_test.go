package util

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestAESECB(t *testing.T) {
	key, _ := RandomBytes(AESKeySize)
	plainText := []byte(`{"countryCode":"us","phoneNumber":"+6281234567890"}`)

	t.Run("EncryptDecrypt", func(t *testing.T) {
		cipherText, err := EncryptAESECB(plainText, key)
		if err != nil {
			t.Fatalf("EncryptAESECB failed: %v", err)
		}
		if len(cipherText)%16 != 0 {
			t.Fatalf("ciphertext length %d is not block aligned", len(cipherText))
		}

		decrypted, err := DecryptAESECB(cipherText, key)
		if err != nil {
			t.Fatalf("DecryptAESECB failed: %v", err)
		}

		if !bytes.Equal(plainText, decrypted) {
			t.Errorf("expected %s, got %s", plainText, decrypted)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		c1, _ := EncryptAESECB(plainText, key)
		c2, _ := EncryptAESECB(plainText, key)
		if !bytes.Equal(c1, c2) {
			t.Error("ECB encryption should be deterministic for the same key and plaintext")
		}
	})

	t.Run("KnownAnswer", func(t *testing.T) {
		// FIPS-197 appendix C.3.
		k, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
		p, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
		c, err := EncryptAESECB(p, k)
		if err != nil {
			t.Fatalf("EncryptAESECB failed: %v", err)
		}
		if len(c) != 32 {
			t.Fatalf("expected a full padding block, got %d bytes", len(c))
		}
		if got := hex.EncodeToString(c[:16]); got != "8ea2b7ca516745bfeafc49904b496089" {
			t.Errorf("unexpected first block %s", got)
		}
	})

	t.Run("EmptyPlaintext", func(t *testing.T) {
		c, err := EncryptAESECB(nil, key)
		if err != nil {
			t.Fatalf("EncryptAESECB failed: %v", err)
		}
		if len(c) != 16 {
			t.Errorf("expected one padding block, got %d bytes", len(c))
		}
		p, err := DecryptAESECB(c, key)
		if err != nil {
			t.Fatalf("DecryptAESECB failed: %v", err)
		}
		if len(p) != 0 {
			t.Errorf("expected empty plaintext, got %x", p)
		}
	})

	t.Run("RejectBadKeySize", func(t *testing.T) {
		if _, err := EncryptAESECB(plainText, []byte("too short")); err == nil {
			t.Error("expected error with wrong key size, got nil")
		}
		if _, err := DecryptAESECB(make([]byte, 16), []byte("too short")); err == nil {
			t.Error("expected error with wrong key size, got nil")
		}
	})

	t.Run("RejectUnalignedCipherText", func(t *testing.T) {
		if _, err := DecryptAESECB(make([]byte, 15), key); err == nil {
			t.Error("expected error for unaligned ciphertext, got nil")
		}
		if _, err := DecryptAESECB(nil, key); err == nil {
			t.Error("expected error for empty ciphertext, got nil")
		}
	})

	t.Run("WrongKey", func(t *testing.T) {
		cipherText, _ := EncryptAESECB(plainText, key)
		other, _ := RandomBytes(AESKeySize)
		decrypted, err := DecryptAESECB(cipherText, other)
		if err == nil && bytes.Equal(decrypted, plainText) {
			t.Error("decrypting under a different key should not recover the plaintext")
		}
	})
}

func TestPKCS7(t *testing.T) {
	for n := 0; n <= 32; n++ {
		in := bytes.Repeat([]byte{0xAB}, n)
		padded := PKCS7Pad(in, 16)
		if len(padded)%16 != 0 || len(padded) <= n {
			t.Fatalf("bad padded length %d for input %d", len(padded), n)
		}
		out, err := PKCS7Unpad(padded, 16)
		if err != nil {
			t.Fatalf("PKCS7Unpad failed for input %d: %v", n, err)
		}
		if !bytes.Equal(in, out) {
			t.Fatalf("round trip mismatch for input %d", n)
		}
	}

	bad := bytes.Repeat([]byte{0x03}, 16)
	bad[14] = 0x02
	if _, err := PKCS7Unpad(bad, 16); !errors.Is(err, ErrInvalidPadding) {
		t.Errorf("expected ErrInvalidPadding, got %v", err)
	}
	if _, err := PKCS7Unpad(make([]byte, 16), 16); !errors.Is(err, ErrInvalidPadding) {
		t.Errorf("expected ErrInvalidPadding for zero pad byte, got %v", err)
	}
}

func TestHMACSHA256(t *testing.T) {
	// RFC 4231 test case 2.
	mac := HMACSHA256([]byte("Jefe"), []byte("what do ya want for nothing?"))
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	if got := hex.EncodeToString(mac); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestBytes(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03}
	WipeBytes(b)
	if !bytes.Equal(b, make([]byte, 3)) {
		t.Errorf("WipeBytes left %v", b)
	}
}

func TestEncoding(t *testing.T) {
	s := "test string"
	encoded := HexEncode([]byte(s))
	decoded, err := HexDecode(encoded)
	if err != nil {
		t.Fatalf("HexDecode failed: %v", err)
	}
	if string(decoded) != s {
		t.Errorf("expected %s, got %s", s, string(decoded))
	}

	b64 := Base64Encode([]byte(s))
	raw, err := Base64Decode(b64)
	if err != nil {
		t.Fatalf("Base64Decode failed: %v", err)
	}
	if string(raw) != s {
		t.Errorf("expected %s, got %s", s, string(raw))
	}

	// Full-width digits fold to ASCII.
	if got := Normalize("０８１２"); got != "0812" {
		t.Errorf("Normalize failed, got %s", got)
	}
}

func TestRandom(t *testing.T) {
	b1, err := RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	if len(b1) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(b1))
	}
	b2, _ := RandomBytes(32)
	if bytes.Equal(b1, b2) {
		t.Error("RandomBytes should return different values")
	}
}
