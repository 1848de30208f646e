package directory_test

import (
	"context"
	"testing"

	directory "github.com/goliatone/go-directory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCredential(t *testing.T, store *memoryCredentialStore, name, email, password string) *directory.Credential {
	t.Helper()

	hash, err := directory.HashPassword(password)
	require.NoError(t, err)

	record, err := store.Register(context.Background(), &directory.Credential{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	require.NoError(t, err)
	return record
}

func TestCredentialProvider_VerifyCredentials(t *testing.T) {
	store := newMemoryCredentialStore()
	seedCredential(t, store, "Ann", "ann@example.com", "secret")

	provider := directory.NewCredentialProvider(store)

	t.Run("returns identity for valid credentials", func(t *testing.T) {
		identity, err := provider.VerifyCredentials(context.Background(), "ann@example.com", "secret")
		require.NoError(t, err)

		assert.Equal(t, "Ann", identity.Name())
		assert.Equal(t, "ann@example.com", identity.Email())
		assert.NotEmpty(t, identity.ID())
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, badPassword := provider.VerifyCredentials(context.Background(), "ann@example.com", "wrong")
		_, badEmail := provider.VerifyCredentials(context.Background(), "nobody@example.com", "secret")

		assert.ErrorIs(t, badPassword, directory.ErrMismatchedHashAndPassword)
		assert.ErrorIs(t, badEmail, directory.ErrMismatchedHashAndPassword)
		assert.Equal(t, badPassword.Error(), badEmail.Error())
	})
}

func TestCredentialProvider_FindIdentityByEmail(t *testing.T) {
	store := newMemoryCredentialStore()
	seedCredential(t, store, "Ann", "ann@example.com", "secret")

	provider := directory.NewCredentialProvider(store)

	t.Run("resolves without a password", func(t *testing.T) {
		identity, err := provider.FindIdentityByEmail(context.Background(), "ann@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Ann", identity.Name())
	})

	t.Run("propagates not found", func(t *testing.T) {
		_, err := provider.FindIdentityByEmail(context.Background(), "nobody@example.com")
		assert.Error(t, err)
	})
}
