// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/pkg/dbpkg"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// mapError translates driver errors into domain errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrAccountNotFound
	case dbpkg.IsUnavailable(err):
		return domain.ErrStoreUnavailable
	case dbpkg.IsRetryable(err):
		return domain.ErrConflict
	case dbpkg.Constraint(err) == "accounts_balance_check":
		return domain.ErrInsufficientBalance
	case dbpkg.Code(err) == dbpkg.CodeNumericOutOfRange:
		return domain.ErrBalanceLimit
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO
    accounts (owner_id, balance, currency)
VALUES
    ($1, $2, $3)
RETURNING id, owner_id, balance, currency, version, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.OwnerID, arg.Balance, arg.Currency)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Balance,
		&a.Currency,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return a, mapError(err)
	}

	return a, nil
}

const getQuery = `
SELECT
	id, owner_id, balance, currency, version, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Balance,
		&a.Currency,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			l.Error().Err(err).Send()
		}

		return a, mapError(err)
	}

	return a, nil
}

const saveQuery = `
UPDATE accounts
SET balance = $1, version = version + 1
WHERE id = $2 AND version = $3
RETURNING id, owner_id, balance, currency, version, created_at
`

// Save stores the account balance if nobody changed the account since it was read.
//
// It returns domain.ErrConflict when the stored version differs from a.Version.
func (r *RepoPGS) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, saveQuery, a.Balance, a.ID, a.Version)

	var saved domain.Account

	err := row.Scan(
		&saved.ID,
		&saved.OwnerID,
		&saved.Balance,
		&saved.Currency,
		&saved.Version,
		&saved.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Debug().Int64("account_id", a.ID).Int64("version", a.Version).Msg("stale account version")
			return saved, domain.ErrConflict
		}

		l.Error().Err(err).Send()

		return saved, mapError(err)
	}

	return saved, nil
}

const listQuery = `
SELECT
	id, owner_id, balance, currency, version, created_at
FROM accounts
WHERE owner_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified number of accounts for the given owner.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.OwnerID, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, mapError(err)
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Balance, &a.Currency, &a.Version, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, mapError(err)
	}

	return items, nil
}
