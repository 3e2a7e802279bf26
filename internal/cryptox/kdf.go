package cryptox

import "golang.org/x/crypto/argon2"

// DeriveKey stretches a passphrase into a KeySize key with Argon2id.
// Same passphrase and salt always give the same key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}
