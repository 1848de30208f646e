package directory

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Credentials is the durable store for authentication records
type Credentials interface {
	repository.Repository[*Credential]

	GetByEmail(ctx context.Context, email string) (*Credential, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Credential, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error)
	Register(ctx context.Context, record *Credential) (*Credential, error)
	RegisterTx(ctx context.Context, tx bun.IDB, record *Credential) (*Credential, error)
}

type credentials struct {
	repository.Repository[*Credential]
	db *bun.DB
}

var (
	_ Credentials                        = (*credentials)(nil)
	_ repository.Repository[*Credential] = (*credentials)(nil)
	_ CredentialStore                    = (*credentials)(nil)
)

func NewCredentialsRepository(db *bun.DB) Credentials {
	repo := repository.NewRepository[*Credential](db, repository.ModelHandlers[*Credential]{
		NewRecord: func() *Credential { return &Credential{} },
		GetID: func(c *Credential) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Credential, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &credentials{
		Repository: repo,
		db:         db,
	}
}

func (a *credentials) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *credentials) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Credential, error) {
	record := &Credential{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", normalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, storeError(err, "failed to load credential")
	}

	return record, nil
}

func (a *credentials) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return a.ExistsByEmailTx(ctx, a.db, email)
}

func (a *credentials) ExistsByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	exists, err := tx.NewSelect().
		Model((*Credential)(nil)).
		Where("?TableAlias.email = ?", normalizeEmail(email)).
		Exists(ctx)

	if err != nil {
		return false, storeError(err, "failed to check credential existence")
	}

	return exists, nil
}

func (a *credentials) Register(ctx context.Context, record *Credential) (*Credential, error) {
	return a.RegisterTx(ctx, a.db, record)
}

func (a *credentials) RegisterTx(ctx context.Context, tx bun.IDB, record *Credential) (*Credential, error) {
	prepareCredentialDefaults(record)

	created, err := a.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateCredential
		}
		return nil, storeError(err, "failed to create credential")
	}

	return created, nil
}

func prepareCredentialDefaults(record *Credential) {
	if record == nil {
		return
	}

	record.Email = normalizeEmail(record.Email)

	if record.ID == uuid.Nil {
		if id, err := hashid.NewUUID(record.Email); err == nil {
			record.ID = id
		} else {
			record.ID = uuid.New()
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
