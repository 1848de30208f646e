package directory

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Profiles is the store for directory profile records
type Profiles interface {
	List(ctx context.Context) ([]*Profile, error)
	ListTx(ctx context.Context, tx bun.IDB) ([]*Profile, error)
	GetByID(ctx context.Context, id int64) (*Profile, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Profile, error)
	Create(ctx context.Context, record *Profile) (*Profile, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Profile) (*Profile, error)
	Update(ctx context.Context, record *Profile) (*Profile, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record *Profile) (*Profile, error)
	Delete(ctx context.Context, id int64) error
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) error
}

type profiles struct {
	db *bun.DB
}

var _ Profiles = (*profiles)(nil)

func NewProfilesRepository(db *bun.DB) Profiles {
	return &profiles{db: db}
}

func (a *profiles) List(ctx context.Context) ([]*Profile, error) {
	return a.ListTx(ctx, a.db)
}

func (a *profiles) ListTx(ctx context.Context, tx bun.IDB) ([]*Profile, error) {
	records := make([]*Profile, 0)
	err := tx.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)

	if err != nil {
		return nil, storeError(err, "failed to list profiles")
	}

	return records, nil
}

func (a *profiles) GetByID(ctx context.Context, id int64) (*Profile, error) {
	return a.GetByIDTx(ctx, a.db, id)
}

func (a *profiles) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Profile, error) {
	record := &Profile{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, ErrProfileNotFound
		}
		return nil, storeError(err, "failed to load profile")
	}

	return record, nil
}

func (a *profiles) Create(ctx context.Context, record *Profile) (*Profile, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *profiles) CreateTx(ctx context.Context, tx bun.IDB, record *Profile) (*Profile, error) {
	// ids are always store-assigned, whatever the caller sent
	record.ID = 0

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, storeError(err, "failed to create profile")
	}

	return a.GetByIDTx(ctx, tx, record.ID)
}

func (a *profiles) Update(ctx context.Context, record *Profile) (*Profile, error) {
	return a.UpdateTx(ctx, a.db, record)
}

func (a *profiles) UpdateTx(ctx context.Context, tx bun.IDB, record *Profile) (*Profile, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := tx.NewUpdate().
		Model(record).
		ExcludeColumn("created_at").
		WherePK().
		Exec(ctx)

	if err != nil {
		return nil, storeError(err, "failed to update profile")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, storeError(err, "failed to read update result")
	}

	if rows == 0 {
		return nil, ErrProfileNotFound
	}

	return a.GetByIDTx(ctx, tx, record.ID)
}

func (a *profiles) Delete(ctx context.Context, id int64) error {
	return a.DeleteTx(ctx, a.db, id)
}

func (a *profiles) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	res, err := tx.NewDelete().
		Model((*Profile)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return storeError(err, "failed to delete profile")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return storeError(err, "failed to read delete result")
	}

	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
