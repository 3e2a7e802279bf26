// Package keystore provisions the license encryption key.
//
// The key must survive restarts: tokens sealed with one key cannot be opened
// with another. At startup the server loads the key from a durable Provider
// or, when none exists yet, generates one and writes it back.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/cryptox"
)

var (
	// ErrKeyNotFound is returned by Provider.Load when no key is stored yet.
	ErrKeyNotFound = errors.New("license key not found")
	// ErrKeyExists is returned by Provider.Store when a key was stored concurrently.
	ErrKeyExists = errors.New("license key already exists")
)

// Provider is durable storage for key material.
type Provider interface {
	Load(ctx context.Context) ([]byte, error)
	Store(ctx context.Context, key []byte) error
}

// generateKey is a test seam.
var generateKey = func() []byte { return common.GenerateRandByteArray(cryptox.KeySize) }

// LoadOrCreate returns the stored key, creating and persisting a new one if
// the provider has none. If another process wins the race to create it, the
// winner's key is loaded and returned.
func LoadOrCreate(ctx context.Context, p Provider) ([]byte, error) {
	key, err := p.Load(ctx)
	if err == nil {
		return checkSize(key)
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("load license key: %w", err)
	}

	key = generateKey()
	if err := p.Store(ctx, key); err != nil {
		if !errors.Is(err, ErrKeyExists) {
			return nil, fmt.Errorf("store license key: %w", err)
		}
		key, err = p.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("reload license key: %w", err)
		}
	}

	return checkSize(key)
}

func checkSize(key []byte) ([]byte, error) {
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("license key must be %d bytes, got %d", cryptox.KeySize, len(key))
	}
	return key, nil
}

// Provisioner runs LoadOrCreate at most once and caches the outcome.
type Provisioner struct {
	provider Provider
	once     sync.Once
	key      []byte
	err      error
}

func NewProvisioner(p Provider) *Provisioner {
	return &Provisioner{provider: p}
}

// Key returns the provisioned key. Only the first call touches the provider.
func (p *Provisioner) Key(ctx context.Context) ([]byte, error) {
	p.once.Do(func() {
		p.key, p.err = LoadOrCreate(ctx, p.provider)
	})
	return p.key, p.err
}
