package backup

import (
	"encoding/base64"
	"fmt"
	"strings"

	"typelearn/internal/domain"
)

// marker is prepended to the plaintext before the XOR pass so a wrong
// passphrase is detected on decode instead of silently returning garbage.
const marker = "TLSNAP1:"

// Obfuscate encodes text with a byte-wise XOR against the repeating
// passphrase followed by base64.
//
// This is NOT encryption and must never be treated as a security boundary.
// It is reversible by construction and only deters casual inspection of
// exported snapshots.
func Obfuscate(text, passphrase string) (string, error) {
	if passphrase == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}

	data := xorBytes([]byte(marker+text), passphrase)
	return base64.StdEncoding.EncodeToString(data), nil
}

// Deobfuscate reverses Obfuscate. A payload that is not base64 or that does
// not carry the marker after the XOR pass (passphrase mismatch) fails with
// a DecryptionError; it never panics.
func Deobfuscate(encoded, passphrase string) (string, error) {
	if passphrase == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", &domain.DecryptionError{Reason: "payload is not valid base64"}
	}

	plain := string(xorBytes(data, passphrase))
	if !strings.HasPrefix(plain, marker) {
		return "", &domain.DecryptionError{Reason: "passphrase mismatch"}
	}

	return strings.TrimPrefix(plain, marker), nil
}

func xorBytes(data []byte, passphrase string) []byte {
	key := []byte(passphrase)
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}
