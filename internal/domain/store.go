package domain

import "context"

//go:generate mockgen -source store.go -destination store_mock.go -package domain

// StoreTx is the set of store operations available inside a single atomic unit.
//
// Implementations must make all writes of the unit visible together on commit
// and discard them all on rollback.
type StoreTx interface {
	// GetAccount returns ErrAccountNotFound when there is no account with the id.
	GetAccount(ctx context.Context, id int64) (Account, error)
	// SaveAccount stores the balance only if the stored version still equals a.Version,
	// otherwise it returns ErrConflict. The returned account carries the new version.
	SaveAccount(ctx context.Context, a Account) (Account, error)
	// AppendTransfer records the transfer and assigns its id and creation time.
	AppendTransfer(ctx context.Context, arg CreateTransferParams) (Transfer, error)
	// AppendEntry records one side of a transfer in the account transaction feed.
	AppendEntry(ctx context.Context, arg CreateEntryParams) (Entry, error)
}
