// Package service provides the key management service for keyman.
package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/yndnr/keyman/internal/core/domain"
	"github.com/yndnr/keyman/internal/storage/keyfile"
	"github.com/yndnr/keyman/internal/storage/memory"
	"github.com/yndnr/keyman/internal/telemetry/logger"
	"github.com/yndnr/keyman/pkg/token"
)

// GenerateFunc produces a new secret of n random bytes.
type GenerateFunc func(n int) (string, error)

// KeyManagerConfig holds configuration for KeyManager.
type KeyManagerConfig struct {
	// Path is the backing keyfile.
	Path string

	// TokenBytes is the entropy of generated secrets (default: 16, minimum: 16).
	TokenBytes int

	// LockMode is LockExclusive (the zero value) for actions that save the
	// keyfile and LockShared for read-only ones.
	LockMode keyfile.LockMode

	// LockTimeout bounds how long Open waits for the keyfile lock (default: 5s).
	LockTimeout time.Duration

	// Generate overrides the secret generator (default: token.GenerateWithLength).
	Generate GenerateFunc
}

// DefaultKeyManagerConfig returns default configuration.
func DefaultKeyManagerConfig() *KeyManagerConfig {
	return &KeyManagerConfig{
		Path:        keyfile.DefaultPath,
		TokenBytes:  token.DefaultLength,
		LockMode:    keyfile.LockExclusive,
		LockTimeout: 5 * time.Second,
		Generate:    token.GenerateWithLength,
	}
}

// KeyManager owns the working copy of the keyfile for one invocation.
//
// Open locks and loads the keyfile; every mutation saves the whole store
// back before returning. Close releases the lock.
type KeyManager struct {
	path       string
	tokenBytes int
	generate   GenerateFunc
	lock       *keyfile.Lock
	keys       *memory.KeyList
}

// OpenKeyManager locks the configured keyfile and loads it.
func OpenKeyManager(ctx context.Context, cfg *KeyManagerConfig) (*KeyManager, error) {
	defaults := DefaultKeyManagerConfig()
	if cfg == nil {
		cfg = defaults
	}
	path := cfg.Path
	if path == "" {
		path = defaults.Path
	}
	tokenBytes := cfg.TokenBytes
	if tokenBytes == 0 {
		tokenBytes = defaults.TokenBytes
	}
	if tokenBytes < token.MinLength {
		return nil, domain.ErrInvalidArgument.WithDetails(
			fmt.Sprintf("token size %d is below the minimum of %d bytes", tokenBytes, token.MinLength))
	}
	timeout := cfg.LockTimeout
	if timeout <= 0 {
		timeout = defaults.LockTimeout
	}
	generate := cfg.Generate
	if generate == nil {
		generate = defaults.Generate
	}

	lock, err := keyfile.AcquireLock(ctx, path, cfg.LockMode, timeout)
	if err != nil {
		return nil, err
	}

	keys, err := keyfile.LoadList(path)
	if err != nil {
		lock.Release()
		return nil, err
	}

	logger.L(ctx).Debug("keyfile loaded", "path", path, "count", keys.Len(), "lock", cfg.LockMode.String(), "locked", lock.Held())

	return &KeyManager{
		path:       path,
		tokenBytes: tokenBytes,
		generate:   generate,
		lock:       lock,
		keys:       keys,
	}, nil
}

// Close releases the keyfile lock.
func (m *KeyManager) Close() error {
	return m.lock.Release()
}

// Path returns the backing keyfile path.
func (m *KeyManager) Path() string {
	return m.path
}

// Generate creates a key with a fresh random secret and the next sequential
// ID, then saves the keyfile. A secret that collides with an existing one
// fails with ErrKeyConflict and leaves the store unchanged.
func (m *KeyManager) Generate(ctx context.Context, comment string) (*domain.Key, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}

	secret, err := m.generate(m.tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	if m.keys.Contains(domain.FieldKey, secret) {
		logger.L(ctx).Warn("generated secret collides with an existing key")
		return nil, domain.ErrKeyConflict
	}

	key := domain.NewKey(strconv.Itoa(m.keys.MaxID()+1), secret, comment)
	if err := m.save(append(m.keys.All(), key)); err != nil {
		return nil, err
	}
	if err := m.keys.Append(key, domain.FieldKey); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("key generated", "id", key.ID, "comment", comment)
	return key.Clone(), nil
}

// Revoke marks the key selected by id or value as revoked and saves the
// keyfile. Exactly one of id and value must be set. Revoking a revoked key
// saves the same state again. A missing key fails with ErrKeyNotFound and
// nothing is written.
func (m *KeyManager) Revoke(ctx context.Context, id, value string) (*domain.Key, error) {
	field, needle, err := selectKey(id, value)
	if err != nil {
		return nil, err
	}
	if err := m.writable(); err != nil {
		return nil, err
	}

	keys := m.keys.All()
	i := slices.IndexFunc(keys, func(k *domain.Key) bool { return k.Matches(field, needle) })
	if i < 0 {
		return nil, domain.ErrKeyNotFound
	}
	keys[i].Revoked = true
	if err := m.save(keys); err != nil {
		return nil, err
	}
	if err := m.keys.Update(field, needle, domain.FieldRevoked, true); err != nil {
		return nil, err
	}

	key := m.keys.Find(field, needle)
	logger.L(ctx).Info("key revoked", "id", key.ID)
	return key, nil
}

// IsRevoked reports the current revoked flag of the key selected by id or
// value. Exactly one of id and value must be set.
func (m *KeyManager) IsRevoked(_ context.Context, id, value string) (bool, error) {
	field, needle, err := selectKey(id, value)
	if err != nil {
		return false, err
	}

	key := m.keys.Find(field, needle)
	if key == nil {
		return false, domain.ErrKeyNotFound
	}
	return key.Revoked, nil
}

// List returns all keys in creation order.
func (m *KeyManager) List() []*domain.Key {
	return m.keys.All()
}

// Reload merges keys added to the keyfile by someone else into the working
// copy. Keys already present are left as they are.
func (m *KeyManager) Reload(ctx context.Context) (int, error) {
	added, err := keyfile.Reload(m.keys, m.path)
	if err != nil {
		return added, err
	}
	logger.L(ctx).Debug("keyfile reloaded", "path", m.path, "added", added)
	return added, nil
}

// save writes keys to the keyfile. Callers apply the change to the working
// copy only once save succeeds.
func (m *KeyManager) save(keys []*domain.Key) error {
	if err := keyfile.Save(m.path, keys); err != nil {
		return fmt.Errorf("save keyfile: %w", err)
	}
	return nil
}

func (m *KeyManager) writable() error {
	if m.lock == nil || m.lock.Mode() != keyfile.LockExclusive {
		return domain.ErrKeyfileReadOnly.WithDetails(m.path)
	}
	return nil
}

// selectKey validates the id/value pair and returns the lookup to run.
func selectKey(id, value string) (domain.Field, string, error) {
	switch {
	case id == "" && value == "":
		return "", "", domain.ErrInvalidArgument.WithDetails("When revoke a key you must set either `id` or `key`")
	case id != "" && value != "":
		return "", "", domain.ErrInvalidArgument.WithDetails("When revoke a key `id` and `key` can't be set at the same time")
	case id != "":
		return domain.FieldID, id, nil
	default:
		return domain.FieldKey, value, nil
	}
}
