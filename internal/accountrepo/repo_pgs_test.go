package accountrepo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
)

var (
	columns     = []string{"id", "owner_id", "balance", "currency", "version", "created_at"}
	decimalEq   = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	testCreated = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
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

	repo, mock := newMock(t)

	arg := domain.CreateAccountParams{OwnerID: 23, Balance: decimal.Zero, Currency: "USD"}

	mock.ExpectQuery(createQuery).
		WithArgs(arg.OwnerID, arg.Balance, arg.Currency).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(1, 23, "0.00", "USD", 0, testCreated))

	got, err := repo.Create(context.Background(), arg)
	require.NoError(t, err)

	want := domain.Account{ID: 1, OwnerID: 23, Balance: decimal.Zero, Currency: "USD", CreatedAt: testCreated}
	if diff := cmp.Diff(want, got, decimalEq); diff != "" {
		t.Errorf("Create returned unexpected diff: %s", diff)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "OK",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getQuery).WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows(columns).AddRow(7, 23, "500.00", "USD", 4, testCreated))
			},
		},
		{
			name: "NotFound",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getQuery).WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "Unavailable",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getQuery).WithArgs(int64(7)).WillReturnError(&pq.Error{Code: "08006"})
			},
			wantErr: domain.ErrStoreUnavailable,
		},
		{
			name: "Internal",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getQuery).WithArgs(int64(7)).WillReturnError(&pq.Error{Code: "42P01"})
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newMock(t)
			tc.setup(mock)

			got, err := repo.Get(context.Background(), 7)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, int64(7), got.ID)
			require.Equal(t, int64(4), got.Version)
			require.True(t, got.Balance.Equal(decimal.RequireFromString("500")))
		})
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	a := domain.Account{ID: 7, OwnerID: 23, Balance: decimal.RequireFromString("450.00"), Currency: "USD", Version: 4}

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		repo, mock := newMock(t)
		mock.ExpectQuery(saveQuery).WithArgs(a.Balance, a.ID, a.Version).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(7, 23, "450.00", "USD", 5, testCreated))

		got, err := repo.Save(context.Background(), a)
		require.NoError(t, err)
		require.Equal(t, int64(5), got.Version)
		require.True(t, got.Balance.Equal(a.Balance))
	})

	t.Run("StaleVersion", func(t *testing.T) {
		t.Parallel()

		repo, mock := newMock(t)
		mock.ExpectQuery(saveQuery).WithArgs(a.Balance, a.ID, a.Version).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Save(context.Background(), a)
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("BalanceCheck", func(t *testing.T) {
		t.Parallel()

		repo, mock := newMock(t)
		mock.ExpectQuery(saveQuery).WithArgs(a.Balance, a.ID, a.Version).
			WillReturnError(&pq.Error{Code: "23514", Constraint: "accounts_balance_check"})

		_, err := repo.Save(context.Background(), a)
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("NumericOverflow", func(t *testing.T) {
		t.Parallel()

		repo, mock := newMock(t)
		mock.ExpectQuery(saveQuery).WithArgs(a.Balance, a.ID, a.Version).
			WillReturnError(&pq.Error{Code: "22003"})

		_, err := repo.Save(context.Background(), a)
		require.ErrorIs(t, err, domain.ErrBalanceLimit)
	})

	t.Run("SerializationFailure", func(t *testing.T) {
		t.Parallel()

		repo, mock := newMock(t)
		mock.ExpectQuery(saveQuery).WithArgs(a.Balance, a.ID, a.Version).
			WillReturnError(&pq.Error{Code: "40001"})

		_, err := repo.Save(context.Background(), a)
		require.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	repo, mock := newMock(t)

	arg := domain.ListAccountsParams{OwnerID: 23, Limit: 5, Offset: 0}

	mock.ExpectQuery(listQuery).WithArgs(arg.OwnerID, arg.Limit, arg.Offset).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 23, "500.00", "USD", 0, testCreated).
			AddRow(2, 23, "100.00", "USD", 0, testCreated))

	got, err := repo.List(context.Background(), arg)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, int64(2), got[1].ID)
}
