package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry transaction types.
const (
	EntryDebit  = "debit"
	EntryCredit = "credit"
)

// CategoryTransfer is the category of entries written by transfers.
const CategoryTransfer = "transfer"

// Entry is one balance change of an account as shown in its transaction feed.
//
// Amount is always positive, TxnType tells the direction.
type Entry struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"` // owner of AccountID
	AccountID   int64           `json:"account_id"`
	TransferID  int64           `json:"transfer_id"`
	TxnType     string          `json:"txn_type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// CreateEntryParams is the input data to append an entry.
type CreateEntryParams struct {
	UserID      int64
	AccountID   int64
	TransferID  int64
	TxnType     string
	Category    string
	Amount      decimal.Decimal
	Description string
}

// ListEntriesParams is the input data to list entries of the user's accounts.
//
// When AccountID is not zero only entries of that account are returned.
type ListEntriesParams struct {
	UserID    int64
	AccountID int64
	Limit     int32
	Offset    int32
}
