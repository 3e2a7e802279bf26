package keystore

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/licensekeeper/internal/cryptox"
)

// PassphraseProvider derives the key from configuration. Nothing is
// written anywhere: the same passphrase and salt always give the same key.
type PassphraseProvider struct {
	passphrase []byte
	salt       []byte
}

func NewPassphraseProvider(passphrase, salt string) (*PassphraseProvider, error) {
	if passphrase == "" || salt == "" {
		return nil, errors.New("passphrase key source needs a passphrase and a salt")
	}
	return &PassphraseProvider{passphrase: []byte(passphrase), salt: []byte(salt)}, nil
}

func (p *PassphraseProvider) Load(_ context.Context) ([]byte, error) {
	return cryptox.DeriveKey(p.passphrase, p.salt), nil
}

func (p *PassphraseProvider) Store(_ context.Context, _ []byte) error {
	return nil
}
