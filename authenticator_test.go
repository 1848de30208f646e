package directory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	directory "github.com/goliatone/go-directory"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct{}

func (testConfig) GetSigningKey() string    { return "test-signing-key" }
func (testConfig) GetSigningMethod() string { return "HS256" }
func (testConfig) GetContextKey() string    { return "user" }
func (testConfig) GetTokenExpiration() int  { return 24 }
func (testConfig) GetTokenLookup() string   { return "header:Authorization" }
func (testConfig) GetAuthScheme() string    { return "Bearer" }
func (testConfig) GetIssuer() string        { return "test-issuer" }
func (testConfig) GetAudience() []string    { return []string{"test-audience"} }

// memoryCredentialStore is an in-memory CredentialStore with the same
// unique-email behavior as the real repository.
type memoryCredentialStore struct {
	mu      sync.Mutex
	records map[string]*directory.Credential

	failNextRegister error
}

func newMemoryCredentialStore() *memoryCredentialStore {
	return &memoryCredentialStore{
		records: map[string]*directory.Credential{},
	}
}

func (s *memoryCredentialStore) GetByEmail(ctx context.Context, email string) (*directory.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[email]
	if !ok {
		return nil, goerrors.New("credential not found", goerrors.CategoryNotFound)
	}
	return record, nil
}

func (s *memoryCredentialStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[email]
	return ok, nil
}

func (s *memoryCredentialStore) Register(ctx context.Context, record *directory.Credential) (*directory.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNextRegister != nil {
		err := s.failNextRegister
		s.failNextRegister = nil
		return nil, err
	}

	if _, ok := s.records[record.Email]; ok {
		return nil, errors.New("UNIQUE constraint failed: credentials.email")
	}

	record.ID = uuid.New()
	s.records[record.Email] = record
	return record, nil
}

func TestAuther_Register(t *testing.T) {
	t.Run("registers and signs in a new identity", func(t *testing.T) {
		store := newMemoryCredentialStore()
		auther := directory.NewAuthenticator(store, testConfig{})

		session, err := auther.Register(context.Background(), "Ann", "ann@example.com", "secret")
		require.NoError(t, err)

		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "Ann", session.Name)
		assert.Equal(t, "ann@example.com", session.Email)

		// the token must round trip through validation
		claims, err := auther.SessionFromToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", claims.Subject())
		assert.Equal(t, "Ann", claims.Name())
	})

	t.Run("stores a hash, never the password", func(t *testing.T) {
		store := newMemoryCredentialStore()
		auther := directory.NewAuthenticator(store, testConfig{})

		_, err := auther.Register(context.Background(), "Ann", "ann@example.com", "secret")
		require.NoError(t, err)

		record, err := store.GetByEmail(context.Background(), "ann@example.com")
		require.NoError(t, err)

		assert.NotEqual(t, "secret", record.PasswordHash)
		assert.NoError(t, directory.ComparePasswordAndHash("secret", record.PasswordHash))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		store := newMemoryCredentialStore()
		auther := directory.NewAuthenticator(store, testConfig{})

		_, err := auther.Register(context.Background(), "Ann", "ann@example.com", "secret")
		require.NoError(t, err)

		_, err = auther.Register(context.Background(), "Other Ann", "ann@example.com", "different")
		assert.ErrorIs(t, err, directory.ErrDuplicateCredential)
	})

	t.Run("maps a store unique violation to a duplicate error", func(t *testing.T) {
		store := newMemoryCredentialStore()
		store.failNextRegister = errors.New("UNIQUE constraint failed: credentials.email")
		auther := directory.NewAuthenticator(store, testConfig{})

		_, err := auther.Register(context.Background(), "Ann", "ann@example.com", "secret")
		assert.ErrorIs(t, err, directory.ErrDuplicateCredential)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		store := newMemoryCredentialStore()
		auther := directory.NewAuthenticator(store, testConfig{})

		_, err := auther.Register(context.Background(), "Ann", "ann@example.com", "")
		assert.Error(t, err)

		exists, err2 := store.ExistsByEmail(context.Background(), "ann@example.com")
		assert.NoError(t, err2)
		assert.False(t, exists)
	})
}

func TestAuther_Login(t *testing.T) {
	setup := func(t *testing.T) (*memoryCredentialStore, *directory.Auther) {
		t.Helper()
		store := newMemoryCredentialStore()
		auther := directory.NewAuthenticator(store, testConfig{})
		_, err := auther.Register(context.Background(), "Ann", "ann@example.com", "secret")
		require.NoError(t, err)
		return store, auther
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		_, auther := setup(t)

		session, err := auther.Login(context.Background(), "ann@example.com", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "Ann", session.Name)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, auther := setup(t)

		_, err := auther.Login(context.Background(), "ann@example.com", "wrong")
		assert.ErrorIs(t, err, directory.ErrMismatchedHashAndPassword)
	})

	t.Run("rejects an unknown email with the same error", func(t *testing.T) {
		_, auther := setup(t)

		_, err := auther.Login(context.Background(), "nobody@example.com", "secret")
		assert.ErrorIs(t, err, directory.ErrMismatchedHashAndPassword)
	})
}

func TestAuther_SessionFromToken(t *testing.T) {
	store := newMemoryCredentialStore()
	auther := directory.NewAuthenticator(store, testConfig{})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		_, err := auther.SessionFromToken("nope")
		assert.Error(t, err)
	})

	t.Run("returns claims from a valid token", func(t *testing.T) {
		session, err := auther.Register(context.Background(), "Ann", "ann@example.com", "secret")
		require.NoError(t, err)

		claims, err := auther.SessionFromToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", claims.Email())
		assert.NotEmpty(t, claims.UserID())
	})
}
