// Package cryptox contains the cryptographic building blocks of LicenseKeeper:
// AES-GCM sealing of JSON payloads, license token encoding, password hashing
// and passphrase-based key derivation.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
)

// KeySize is the length of the AES-256 keys used for license tokens.
const KeySize = 32

var errShortCiphertext = errors.New("ciphertext too short")

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// SealJSON serializes v to JSON and encrypts it with AES-GCM.
//
// A fresh random nonce is generated on every call and prepended to the
// ciphertext, so sealing the same value twice never yields the same output.
// The key must be 16, 24 or 32 bytes long.
func SealJSON(v any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenJSON reverses SealJSON: it splits off the nonce, authenticates and
// decrypts the ciphertext and unmarshals the plaintext into v.
func OpenJSON(sealed, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	if len(sealed) < aesgcm.NonceSize()+aesgcm.Overhead() {
		return errShortCiphertext
	}

	nonce, ciphertext := sealed[:aesgcm.NonceSize()], sealed[aesgcm.NonceSize():]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("payload: %w", err)
	}
	return nil
}
