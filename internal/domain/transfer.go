package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrCurrencyMismatch indicates that transfer accounts have different currencies.
	ErrCurrencyMismatch = errors.New("accounts currency mismatch")
	// ErrInvalidAmount indicates that the amount is not a positive number with at most two decimals.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidOwner indicates that the user may only transfer from accounts they own.
	ErrInvalidOwner = errors.New("may only transfer from accounts you own")
	// ErrSameAccount indicates that the source and the destination are the same account.
	ErrSameAccount = errors.New("cannot transfer to the same account")
	// ErrTransferNotFound indicates that the transfer is not found.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrTransferOwnerMismatch indicates that the transfer was made by another user.
	ErrTransferOwnerMismatch = errors.New("transfer owner mismatch")
	// ErrStoreUnavailable indicates that the underlying storage cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrTransferFailed indicates that a valid transfer could not be committed.
	// Nothing was changed and the whole operation may be retried.
	ErrTransferFailed = errors.New("transfer failed")
)

// Transfer is an immutable ledger record of money moved between two accounts.
type Transfer struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"` // must be positive
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	UserID        int64           `json:"user_id"`
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

// ListTransfersParams is the input data to list transfers made by the user.
//
// When AccountID is not zero only transfers touching that account are returned.
type ListTransfersParams struct {
	UserID    int64 `json:"user_id"`
	AccountID int64 `json:"account_id"`
	Limit     int32 `json:"limit"`
	Offset    int32 `json:"offset"`
}
