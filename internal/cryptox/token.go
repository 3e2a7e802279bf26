package cryptox

import (
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
)

// TokenCodec turns license payloads into opaque, tamper-evident tokens and back.
//
// Tokens are base64url(nonce || AES-GCM ciphertext) without padding. The
// nonce is random per call, so two tokens for the same payload differ and
// tokens must only ever be compared with each other, never re-derived.
type TokenCodec struct {
	key []byte
}

// NewTokenCodec builds a codec around a provisioned key. The key is copied.
func NewTokenCodec(key []byte) (*TokenCodec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("license key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &TokenCodec{key: k}, nil
}

// Encode seals payload into a token.
func (c *TokenCodec) Encode(payload any) (string, error) {
	sealed, err := SealJSON(payload, c.key)
	if err != nil {
		return "", fmt.Errorf("encode license token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode authenticates token and unmarshals its payload into v. Any failure
// (bad encoding, tag mismatch, foreign key, malformed payload) is reported
// as common.ErrDecode.
func (c *TokenCodec) Decode(token string, v any) error {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecode, err)
	}
	if err := OpenJSON(sealed, c.key, v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecode, err)
	}
	return nil
}
