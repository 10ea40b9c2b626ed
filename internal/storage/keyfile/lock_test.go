package keyfile

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/keyman/internal/core/domain"
)

func TestAcquireLock_ExclusiveBlocksExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyfile.json")
	ctx := context.Background()

	first, err := AcquireLock(ctx, path, LockExclusive, time.Second)
	require.NoError(t, err)
	defer first.Release()

	_, err = AcquireLock(ctx, path, LockExclusive, 150*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrKeyfileLocked), "err = %v", err)
}

func TestAcquireLock_ExclusiveBlocksShared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyfile.json")
	ctx := context.Background()

	first, err := AcquireLock(ctx, path, LockExclusive, time.Second)
	require.NoError(t, err)
	defer first.Release()

	_, err = AcquireLock(ctx, path, LockShared, 150*time.Millisecond)
	assert.True(t, errors.Is(err, domain.ErrKeyfileLocked))
}

func TestAcquireLock_SharedAllowsShared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyfile.json")
	ctx := context.Background()

	a, err := AcquireLock(ctx, path, LockShared, time.Second)
	require.NoError(t, err)
	defer a.Release()

	b, err := AcquireLock(ctx, path, LockShared, time.Second)
	require.NoError(t, err)
	defer b.Release()

	assert.Equal(t, LockShared, b.Mode())
}

func TestAcquireLock_ReleaseAllowsNext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyfile.json")
	ctx := context.Background()

	first, err := AcquireLock(ctx, path, LockExclusive, time.Second)
	require.NoError(t, err)
	require.NoError(t, first.Release())

	second, err := AcquireLock(ctx, path, LockExclusive, time.Second)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestLock_ReleaseNil(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}

func TestLockPath(t *testing.T) {
	assert.Equal(t, "/tmp/keys.json.lock", LockPath("/tmp/keys.json"))
	assert.Equal(t, "exclusive", LockExclusive.String())
	assert.Equal(t, "shared", LockShared.String())
}

func TestAcquireLock_ParentCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyfile.json")

	first, err := AcquireLock(context.Background(), path, LockExclusive, time.Second)
	require.NoError(t, err)
	defer first.Release()

	stop := errors.New("interrupted")
	ctx, cancel := context.WithCancelCause(context.Background())
	time.AfterFunc(50*time.Millisecond, func() { cancel(stop) })

	_, err = AcquireLock(ctx, path, LockExclusive, 5*time.Second)
	require.ErrorIs(t, err, stop)
	assert.False(t, errors.Is(err, domain.ErrKeyfileLocked))
}

func TestAcquireLock_SharedMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nosuchdir", "keyfile.json")

	l, err := AcquireLock(context.Background(), path, LockShared, time.Second)
	require.NoError(t, err)
	assert.False(t, l.Held())
	assert.Equal(t, LockShared, l.Mode())
	assert.NoError(t, l.Release())
	assert.NoFileExists(t, LockPath(path))
}

func TestAcquireLock_ExclusiveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nosuchdir", "keyfile.json")

	_, err := AcquireLock(context.Background(), path, LockExclusive, time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, errors.Is(err, domain.ErrKeyfileLocked))
}

func TestLockMode_ZeroValueIsExclusive(t *testing.T) {
	var mode LockMode
	assert.Equal(t, LockExclusive, mode)
}
