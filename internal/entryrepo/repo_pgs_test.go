package entryrepo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
)

var (
	columns      = []string{"id", "user_id", "account_id", "transfer_id", "txn_type", "category", "amount", "description", "occurred_at"}
	decimalEq    = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	testOccurred = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
)

func newMock(t *testing.T) (*RepoPGS, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewRepoPGS(db), mock
}

func TestCreate(t *testing.T) {
	t.Parallel()

	arg := domain.CreateEntryParams{
		UserID:      23,
		AccountID:   1,
		TransferID:  9,
		TxnType:     domain.EntryDebit,
		Category:    domain.CategoryTransfer,
		Amount:      decimal.RequireFromString("50.00"),
		Description: "rent",
	}

	testCases := []struct {
		name    string
		result  func(e *sqlmock.ExpectedQuery)
		wantErr error
	}{
		{
			name: "OK",
			result: func(e *sqlmock.ExpectedQuery) {
				e.WillReturnRows(sqlmock.NewRows(columns).
					AddRow(4, 23, 1, 9, domain.EntryDebit, domain.CategoryTransfer, "50.00", "rent", testOccurred))
			},
		},
		{
			name: "AccountFK",
			result: func(e *sqlmock.ExpectedQuery) {
				e.WillReturnError(&pq.Error{Code: "23503", Constraint: "entries_account_id_fkey"})
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "AmountCheckPgx",
			result: func(e *sqlmock.ExpectedQuery) {
				e.WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "entries_amount_check"})
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "TxnTypeCheck",
			result: func(e *sqlmock.ExpectedQuery) {
				e.WillReturnError(&pq.Error{Code: "23514", Constraint: "entries_txn_type_check"})
			},
			wantErr: errorspkg.ErrInternal,
		},
		{
			name: "SerializationFailure",
			result: func(e *sqlmock.ExpectedQuery) {
				e.WillReturnError(&pq.Error{Code: "40001"})
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newMock(t)
			tc.result(mock.ExpectQuery(createQuery).WithArgs(
				arg.UserID, arg.AccountID, arg.TransferID, arg.TxnType, arg.Category, arg.Amount, arg.Description))

			got, err := repo.Create(context.Background(), arg)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			want := domain.Entry{
				ID:          4,
				UserID:      23,
				AccountID:   1,
				TransferID:  9,
				TxnType:     domain.EntryDebit,
				Category:    domain.CategoryTransfer,
				Amount:      arg.Amount,
				Description: "rent",
				OccurredAt:  testOccurred,
			}
			if diff := cmp.Diff(want, got, decimalEq); diff != "" {
				t.Errorf("Create returned unexpected diff: %s", diff)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	arg := domain.ListEntriesParams{UserID: 23, AccountID: 1, Limit: 5, Offset: 0}

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		repo, mock := newMock(t)
		mock.ExpectQuery(listQuery).
			WithArgs(arg.UserID, arg.AccountID, arg.Limit, arg.Offset).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, 23, 1, 9, domain.EntryDebit, domain.CategoryTransfer, "50.00", "", testOccurred).
				AddRow(3, 23, 1, 10, domain.EntryCredit, domain.CategoryTransfer, "7.25", "refund", testOccurred))

		got, err := repo.List(context.Background(), arg)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, domain.EntryCredit, got[1].TxnType)
		require.True(t, got[1].Amount.Equal(decimal.RequireFromString("7.25")))
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()

		repo, mock := newMock(t)
		mock.ExpectQuery(listQuery).
			WithArgs(arg.UserID, arg.AccountID, arg.Limit, arg.Offset).
			WillReturnRows(sqlmock.NewRows(columns))

		got, err := repo.List(context.Background(), arg)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("Unavailable", func(t *testing.T) {
		t.Parallel()

		repo, mock := newMock(t)
		mock.ExpectQuery(listQuery).
			WithArgs(arg.UserID, arg.AccountID, arg.Limit, arg.Offset).
			WillReturnError(&pq.Error{Code: "08006"})

		_, err := repo.List(context.Background(), arg)
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}
