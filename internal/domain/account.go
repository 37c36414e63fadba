// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountOwnerMismatch indicates that the account does not belong to the user.
	ErrAccountOwnerMismatch = errors.New("account owner mismatch")
	// ErrConflict indicates that the account was changed since it was read.
	ErrConflict = errors.New("account version conflict")
	// ErrBalanceLimit indicates that the credited account would exceed the largest storable balance.
	ErrBalanceLimit = errors.New("account balance limit exceeded")
)

// Account holds user balance data for specific currency.
type Account struct {
	ID       int64           `json:"id"`
	OwnerID  int64           `json:"owner_id"`
	Balance  decimal.Decimal `json:"balance"` // never negative
	Currency string          `json:"currency"`
	// Version is incremented on every save and guards concurrent updates.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccountParams is the input data to provision an account.
type CreateAccountParams struct {
	OwnerID  int64
	Balance  decimal.Decimal
	Currency string
}

// ListAccountsParams is the input data to list accounts of the owner.
type ListAccountsParams struct {
	OwnerID int64
	Limit   int32
	Offset  int32
}

// AccountNotFoundError tells which side of a transfer could not be resolved.
type AccountNotFoundError struct {
	Role      string // "from" or "to"
	AccountID int64
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("%s account %d not found", e.Role, e.AccountID)
}

// Unwrap makes errors.Is(err, ErrAccountNotFound) hold.
func (e *AccountNotFoundError) Unwrap() error {
	return ErrAccountNotFound
}
