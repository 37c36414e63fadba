package dbpkg

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestConstraint(t *testing.T) {
	t.Parallel()

	pqErr := &pq.Error{Code: CodeCheckViolation, Constraint: "accounts_balance_check"}
	require.Equal(t, "accounts_balance_check", Constraint(pqErr))
	require.Equal(t, "accounts_balance_check", Constraint(fmt.Errorf("wrapped: %w", pqErr)))

	pgErr := &pgconn.PgError{Code: CodeForeignKeyViolation, ConstraintName: "transfers_to_account_id_fkey"}
	require.Equal(t, "transfers_to_account_id_fkey", Constraint(pgErr))
	require.Equal(t, CodeForeignKeyViolation, Code(pgErr))

	require.Empty(t, Constraint(errors.New("plain")))
	require.Empty(t, Code(sql.ErrNoRows))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	require.True(t, IsRetryable(&pq.Error{Code: CodeSerializationFailure}))
	require.True(t, IsRetryable(&pgconn.PgError{Code: CodeDeadlockDetected}))
	require.False(t, IsRetryable(&pq.Error{Code: CodeCheckViolation}))
	require.False(t, IsRetryable(sql.ErrNoRows))
}

func TestIsUnavailable(t *testing.T) {
	t.Parallel()

	require.True(t, IsUnavailable(driver.ErrBadConn))
	require.True(t, IsUnavailable(fmt.Errorf("begin: %w", sql.ErrConnDone)))
	require.True(t, IsUnavailable(&pq.Error{Code: "08006"}))
	require.True(t, IsUnavailable(&pgconn.PgError{Code: "57P01"}))
	require.False(t, IsUnavailable(&pq.Error{Code: CodeUniqueViolation}))
	require.False(t, IsUnavailable(sql.ErrNoRows))
}
