// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/internal/accountrepo"
	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/internal/entryrepo"
	"github.com/chris7683/CAEAPP/pkg/dbpkg"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transfer RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transfer RepoPGS wiht connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrTransferNotFound
	case dbpkg.IsUnavailable(err):
		return domain.ErrStoreUnavailable
	case dbpkg.IsRetryable(err):
		return domain.ErrConflict
	}

	switch dbpkg.Constraint(err) {
	case "transfers_from_account_id_fkey", "transfers_to_account_id_fkey":
		return domain.ErrAccountNotFound
	case "transfers_amount_check":
		return domain.ErrInvalidAmount
	case "transfers_distinct_accounts_check":
		return domain.ErrSameAccount
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO
    transfers (user_id, from_account_id, to_account_id, amount, description)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, user_id, from_account_id, to_account_id, amount, description, created_at
`

// Create appends the transfer to the ledger and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.UserID,
		arg.FromAccountID,
		arg.ToAccountID,
		arg.Amount,
		arg.Description,
	)

	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.FromAccountID,
		&t.ToAccountID,
		&t.Amount,
		&t.Description,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)
		return t, mapError(err)
	}

	return t, nil
}

const getQuery = `
SELECT
	id, user_id, from_account_id, to_account_id, amount, description, created_at
FROM transfers
WHERE id = $1
`

// Get returns the transfer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.FromAccountID,
		&t.ToAccountID,
		&t.Amount,
		&t.Description,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return t, mapError(err)
	}

	return t, nil
}

const listQuery = `
SELECT
	id, user_id, from_account_id, to_account_id, amount, description, created_at
FROM transfers
WHERE
    user_id = $1
    AND ($2::bigint = 0 OR from_account_id = $2 OR to_account_id = $2)
ORDER BY id
LIMIT $3 OFFSET $4
`

// List returns the transfers made by the user, optionally only those touching one account.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error) {
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

	items := []domain.Transfer{}

	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.FromAccountID,
			&t.ToAccountID,
			&t.Amount,
			&t.Description,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
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

// txStore exposes the account, transfer and entry repositories bound to one sql transaction.
type txStore struct {
	accounts  *accountrepo.RepoPGS
	transfers *RepoPGS
	entries   *entryrepo.RepoPGS
}

func (s txStore) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	return s.accounts.Get(ctx, id)
}

func (s txStore) SaveAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	return s.accounts.Save(ctx, a)
}

func (s txStore) AppendTransfer(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	return s.transfers.Create(ctx, arg)
}

func (s txStore) AppendEntry(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	return s.entries.Create(ctx, arg)
}

// ExecTx runs fn within a single database transaction.
//
// The transaction is committed only if fn returns nil, otherwise it is rolled back
// and the error of fn is returned unchanged.
func (r *RepoPGS) ExecTx(ctx context.Context, fn func(domain.StoreTx) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Msg("begin transaction")

		if dbpkg.IsUnavailable(err) {
			return domain.ErrStoreUnavailable
		}

		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Msg("rollback transaction")
		}
	}()

	store := txStore{
		accounts:  accountrepo.NewRepoPGS(tx),
		transfers: NewTxRepoPGS(tx),
		entries:   entryrepo.NewRepoPGS(tx),
	}

	if err := fn(store); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Msg("commit transaction")

		switch {
		case dbpkg.IsRetryable(err):
			return domain.ErrConflict
		case dbpkg.IsUnavailable(err):
			return domain.ErrStoreUnavailable
		}

		return errorspkg.ErrInternal
	}

	return nil
}
