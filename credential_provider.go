package directory

import (
	"context"

	"github.com/goliatone/go-errors"
)

// CredentialProvider verifies passwords against a CredentialStore
type CredentialProvider struct {
	store  CredentialStore
	logger Logger
}

// NewCredentialProvider will create a new CredentialProvider
func NewCredentialProvider(store CredentialStore) *CredentialProvider {
	return &CredentialProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (p *CredentialProvider) WithLogger(l Logger) *CredentialProvider {
	p.logger = l
	return p
}

// VerifyCredentials will find the credential, compare the password, and
// return an identity. Unknown emails and bad passwords both fail with
// ErrMismatchedHashAndPassword.
func (p *CredentialProvider) VerifyCredentials(ctx context.Context, email, password string) (Identity, error) {
	record, err := p.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve credential during verification")
	}

	if err := ComparePasswordAndHash(password, record.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return credIdentity{
		id:    record.ID.String(),
		name:  record.Name,
		email: record.Email,
	}, nil
}

// FindIdentityByEmail resolves an identity without checking a password
func (p *CredentialProvider) FindIdentityByEmail(ctx context.Context, email string) (Identity, error) {
	record, err := p.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return credIdentity{
		id:    record.ID.String(),
		name:  record.Name,
		email: record.Email,
	}, nil
}

type credIdentity struct {
	id    string
	name  string
	email string
}

func (a credIdentity) ID() string {
	return a.id
}

func (a credIdentity) Name() string {
	return a.name
}

func (a credIdentity) Email() string {
	return a.email
}
