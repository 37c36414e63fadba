// Package memstore keeps accounts, the transfer ledger and account entries in process memory.
//
// It provides the same contracts as the postgres repositories, including versioned
// account records and all-or-nothing commits, and is used by default and in tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/pkg/moneypkg"
)

// Store holds committed accounts and transfers.
type Store struct {
	mu        sync.RWMutex
	accounts  map[int64]domain.Account
	transfers []domain.Transfer
	entries   []domain.Entry

	idMu           sync.Mutex
	lastAccountID  int64
	lastTransferID int64
	lastEntryID    int64

	now func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		accounts: make(map[int64]domain.Account),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Accounts returns the account repository view of the store.
func (s *Store) Accounts() *AccountRepo {
	return &AccountRepo{s: s}
}

// Transfers returns the transfer repository view of the store.
func (s *Store) Transfers() *TransferRepo {
	return &TransferRepo{s: s}
}

// Entries returns the entry repository view of the store.
func (s *Store) Entries() *EntryRepo {
	return &EntryRepo{s: s}
}

func (s *Store) nextAccountID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	s.lastAccountID++

	return s.lastAccountID
}

func (s *Store) nextTransferID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	s.lastTransferID++

	return s.lastTransferID
}

func (s *Store) nextEntryID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	s.lastEntryID++

	return s.lastEntryID
}

func (s *Store) account(id int64) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]

	return a, ok
}

// AccountRepo manages accounts kept in a Store.
type AccountRepo struct {
	s *Store
}

// Create creates the account and then returns it.
func (r *AccountRepo) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	if arg.Balance.IsNegative() {
		return domain.Account{}, domain.ErrInsufficientBalance
	}

	if arg.Balance.GreaterThan(moneypkg.MaxAmount) {
		return domain.Account{}, domain.ErrBalanceLimit
	}

	a := domain.Account{
		ID:        r.s.nextAccountID(),
		OwnerID:   arg.OwnerID,
		Balance:   arg.Balance,
		Currency:  arg.Currency,
		CreatedAt: r.s.now(),
	}

	r.s.mu.Lock()
	r.s.accounts[a.ID] = a
	r.s.mu.Unlock()

	return a, nil
}

// Get returns the account with the given id.
func (r *AccountRepo) Get(ctx context.Context, id int64) (domain.Account, error) {
	a, ok := r.s.account(id)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return a, nil
}

// List returns the specified number of accounts for the given owner ordered by id.
func (r *AccountRepo) List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error) {
	r.s.mu.RLock()

	items := []domain.Account{}

	for _, a := range r.s.accounts {
		if a.OwnerID == arg.OwnerID {
			items = append(items, a)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return page(items, arg.Limit, arg.Offset), nil
}

// TransferRepo manages the transfer ledger kept in a Store.
type TransferRepo struct {
	s *Store
}

// Get returns the transfer with the given id.
func (r *TransferRepo) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.transfers {
		if t.ID == id {
			return t, nil
		}
	}

	return domain.Transfer{}, domain.ErrTransferNotFound
}

// List returns the transfers made by the user, optionally only those touching one account.
func (r *TransferRepo) List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error) {
	r.s.mu.RLock()

	items := []domain.Transfer{}

	for _, t := range r.s.transfers {
		if t.UserID != arg.UserID {
			continue
		}

		if arg.AccountID != 0 && t.FromAccountID != arg.AccountID && t.ToAccountID != arg.AccountID {
			continue
		}

		items = append(items, t)
	}
	r.s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return page(items, arg.Limit, arg.Offset), nil
}

// EntryRepo manages account entries kept in a Store.
type EntryRepo struct {
	s *Store
}

// List returns the entries of the user's accounts, optionally of one account only.
func (r *EntryRepo) List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	r.s.mu.RLock()

	items := []domain.Entry{}

	for _, e := range r.s.entries {
		if e.UserID != arg.UserID {
			continue
		}

		if arg.AccountID != 0 && e.AccountID != arg.AccountID {
			continue
		}

		items = append(items, e)
	}
	r.s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return page(items, arg.Limit, arg.Offset), nil
}

// ExecTx runs fn against a transaction whose writes are buffered and applied on success.
//
// Writes become visible to readers all at once. If fn fails nothing is applied and its
// error is returned. Commit fails with domain.ErrConflict when a saved account was changed
// by another transaction in the meantime.
func (r *TransferRepo) ExecTx(ctx context.Context, fn func(domain.StoreTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		s:        r.s,
		writes:   make(map[int64]domain.Account),
		readVers: make(map[int64]int64),
	}

	if err := fn(tx); err != nil {
		return err
	}

	return tx.commit()
}

type memTx struct {
	s         *Store
	writes    map[int64]domain.Account
	readVers  map[int64]int64 // committed version each written account was based on
	transfers []domain.Transfer
	entries   []domain.Entry
}

func (tx *memTx) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	if a, ok := tx.writes[id]; ok {
		return a, nil
	}

	a, ok := tx.s.account(id)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return a, nil
}

func (tx *memTx) SaveAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	current, err := tx.GetAccount(ctx, a.ID)
	if err != nil {
		return domain.Account{}, err
	}

	if current.Version != a.Version {
		return domain.Account{}, domain.ErrConflict
	}

	if a.Balance.IsNegative() {
		return domain.Account{}, domain.ErrInsufficientBalance
	}

	if a.Balance.GreaterThan(moneypkg.MaxAmount) {
		return domain.Account{}, domain.ErrBalanceLimit
	}

	if _, ok := tx.readVers[a.ID]; !ok {
		tx.readVers[a.ID] = current.Version
	}

	saved := current
	saved.Balance = a.Balance
	saved.Version = current.Version + 1
	tx.writes[a.ID] = saved

	return saved, nil
}

func (tx *memTx) AppendTransfer(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	if !arg.Amount.GreaterThan(decimal.Zero) {
		return domain.Transfer{}, domain.ErrInvalidAmount
	}

	if arg.FromAccountID == arg.ToAccountID {
		return domain.Transfer{}, domain.ErrSameAccount
	}

	for _, id := range []int64{arg.FromAccountID, arg.ToAccountID} {
		if _, err := tx.GetAccount(ctx, id); err != nil {
			return domain.Transfer{}, err
		}
	}

	t := domain.Transfer{
		ID:            tx.s.nextTransferID(),
		UserID:        arg.UserID,
		FromAccountID: arg.FromAccountID,
		ToAccountID:   arg.ToAccountID,
		Amount:        arg.Amount,
		Description:   arg.Description,
		CreatedAt:     tx.s.now(),
	}
	tx.transfers = append(tx.transfers, t)

	return t, nil
}

func (tx *memTx) AppendEntry(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	if !arg.Amount.GreaterThan(decimal.Zero) {
		return domain.Entry{}, domain.ErrInvalidAmount
	}

	if _, err := tx.GetAccount(ctx, arg.AccountID); err != nil {
		return domain.Entry{}, err
	}

	e := domain.Entry{
		ID:          tx.s.nextEntryID(),
		UserID:      arg.UserID,
		AccountID:   arg.AccountID,
		TransferID:  arg.TransferID,
		TxnType:     arg.TxnType,
		Category:    arg.Category,
		Amount:      arg.Amount,
		Description: arg.Description,
		OccurredAt:  tx.s.now(),
	}
	tx.entries = append(tx.entries, e)

	return e, nil
}

func (tx *memTx) commit() error {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()

	for id, v := range tx.readVers {
		if tx.s.accounts[id].Version != v {
			return domain.ErrConflict
		}
	}

	for id, a := range tx.writes {
		tx.s.accounts[id] = a
	}

	tx.s.transfers = append(tx.s.transfers, tx.transfers...)
	tx.s.entries = append(tx.s.entries, tx.entries...)

	return nil
}

func page[T any](items []T, limit, offset int32) []T {
	if offset < 0 {
		offset = 0
	}

	if int(offset) >= len(items) {
		return []T{}
	}

	items = items[offset:]

	if limit > 0 && int(limit) < len(items) {
		items = items[:limit]
	}

	return items
}
