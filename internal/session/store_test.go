package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelclient/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	store, err := NewStore(storage, "test-passphrase")
	require.NoError(t, err)
	return store
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyToken, "some-opaque-token"))

	value, ok := store.Load(ctx, KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "some-opaque-token", value)
}

func TestStore_LoadNeverSavedKey(t *testing.T) {
	store := newTestStore(t)

	value, ok := store.Load(context.Background(), KeyToken)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStore_LoadTamperedCiphertext(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	store, err := NewStore(storage, "test-passphrase")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyToken, "some-opaque-token"))

	// Corrupt the stored ciphertext; Load must report absence, not panic.
	require.NoError(t, storage.Set(ctx, KeyToken, "bm90IHJlYWwgY2lwaGVydGV4dA=="))

	value, ok := store.Load(ctx, KeyToken)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStore_LoadGarbageEncoding(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	store, err := NewStore(storage, "test-passphrase")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, KeyToken, "%%% not base64 %%%"))

	_, ok := store.Load(ctx, KeyToken)
	assert.False(t, ok)
}

func TestStore_WrongPassphraseReadsAsAbsent(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	ctx := context.Background()

	first, err := NewStore(storage, "passphrase-one")
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, KeyToken, "secret"))

	second, err := NewStore(storage, "passphrase-two")
	require.NoError(t, err)

	_, ok := second.Load(ctx, KeyToken)
	assert.False(t, ok)
}

func TestStore_ClearSessionRemovesBothEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, "token-value", domain.RoleCustomer))
	assert.True(t, store.IsAuthenticated(ctx))

	require.NoError(t, store.ClearSession(ctx))

	assert.False(t, store.IsAuthenticated(ctx))
	_, ok := store.Load(ctx, KeyRole)
	assert.False(t, ok)
}

func TestStore_HasRole(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.False(t, store.HasRole(ctx, domain.RoleAdmin))

	require.NoError(t, store.SaveSession(ctx, "token-value", domain.RoleAdmin))
	assert.True(t, store.HasRole(ctx, domain.RoleAdmin))
	assert.False(t, store.HasRole(ctx, domain.RoleCustomer))
}

func TestNewStore_RequiresPassphrase(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	_, err := NewStore(storage, "")
	assert.Error(t, err)
}
