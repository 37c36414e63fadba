// Package entryrepo manages repository layer of account entries.
package entryrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/pkg/dbpkg"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
)

// RepoPGS facilitates entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return errorspkg.ErrInternal
	case dbpkg.IsUnavailable(err):
		return domain.ErrStoreUnavailable
	case dbpkg.IsRetryable(err):
		return domain.ErrConflict
	}

	switch dbpkg.Constraint(err) {
	case "entries_account_id_fkey":
		return domain.ErrAccountNotFound
	case "entries_amount_check":
		return domain.ErrInvalidAmount
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO
    entries (user_id, account_id, transfer_id, txn_type, category, amount, description)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, account_id, transfer_id, txn_type, category, amount, description, occurred_at
`

// Create appends the entry and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.UserID,
		arg.AccountID,
		arg.TransferID,
		arg.TxnType,
		arg.Category,
		arg.Amount,
		arg.Description,
	)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.AccountID,
		&e.TransferID,
		&e.TxnType,
		&e.Category,
		&e.Amount,
		&e.Description,
		&e.OccurredAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)
		return e, mapError(err)
	}

	return e, nil
}

const listQuery = `
SELECT
	id, user_id, account_id, transfer_id, txn_type, category, amount, description, occurred_at
FROM entries
WHERE
    user_id = $1
    AND ($2::bigint = 0 OR account_id = $2)
ORDER BY id
LIMIT $3 OFFSET $4
`

// List returns the entries of the user's accounts, optionally of one account only.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery,
		arg.UserID,
		arg.AccountID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, mapError(err)
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.AccountID,
			&e.TransferID,
			&e.TxnType,
			&e.Category,
			&e.Amount,
			&e.Description,
			&e.OccurredAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
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
