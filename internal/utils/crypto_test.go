package utils

import (
	"strings"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := "s3cret-Passw0rd!"

	encrypted, err := Encrypt(testKey, plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if !strings.Contains(encrypted, ":") {
		t.Fatalf("expected iv:ciphertext format, got %q", encrypted)
	}
	if strings.Contains(encrypted, plaintext) {
		t.Fatal("ciphertext leaks the plaintext")
	}

	decrypted, err := Decrypt(testKey, encrypted)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("round trip mismatch: got %q", decrypted)
	}
}

func TestEncryptRandomIV(t *testing.T) {
	first, err := Encrypt(testKey, "same input")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := Encrypt(testKey, "same input")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if first == second {
		t.Error("two encryptions of the same input must differ")
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "no-separator", "zz:zz", "abcd:"} {
		if _, err := Decrypt(testKey, input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestEncryptRejectsBadKey(t *testing.T) {
	if _, err := Encrypt("short", "text"); err == nil {
		t.Error("expected error for invalid key length")
	}
}
