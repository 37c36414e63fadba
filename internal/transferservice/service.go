// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/internal/metrics"
	"github.com/chris7683/CAEAPP/pkg/keylock"
	"github.com/chris7683/CAEAPP/pkg/moneypkg"
)

// DefaultMaxRetries is the number of extra attempts made after a version conflict.
const DefaultMaxRetries = 3

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	ExecTx(ctx context.Context, fn func(domain.StoreTx) error) error
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo       Repo
	locks      *keylock.Locker
	maxRetries int
	metrics    *metrics.Recorder
}

// New return transfer service struct to manage transfer bussines logic.
//
// A negative maxRetries disables retries. recorder may be nil.
func New(repo Repo, maxRetries int, recorder *metrics.Recorder) *Service {
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Service{
		repo:       repo,
		locks:      keylock.New(),
		maxRetries: maxRetries,
		metrics:    recorder,
	}
}

// Transfer moves arg.Amount from arg.FromAccountID to arg.ToAccountID on behalf of arg.UserID.
//
// Rejections (invalid amount, missing account, foreign source account, same account,
// currency mismatch, insufficient funds, credit over the balance limit) are returned
// as they are and change nothing. A committed transfer also writes a debit entry for
// the source account and a credit entry for the destination.
// A valid request that could not be committed returns an error wrapping
// domain.ErrTransferFailed, also without any effect.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	start := time.Now()

	t, err := s.transfer(ctx, arg)

	s.metrics.Transfer(ctx, outcome(err), time.Since(start))

	return t, err
}

func (s *Service) transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	if !moneypkg.IsValidAmount(arg.Amount) {
		l.Info().Str("amount", arg.Amount.String()).Msg("rejected transfer: invalid amount")
		return domain.Transfer{}, domain.ErrInvalidAmount
	}

	unlock, err := s.locks.LockAll(ctx, arg.FromAccountID, arg.ToAccountID)
	if err != nil {
		l.Error().Err(err).Msg("acquire account locks")
		return domain.Transfer{}, fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
	}
	defer unlock()

	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			l.Debug().Int("attempt", attempt).Err(lastErr).Msg("retrying transfer")
			s.metrics.Retry(ctx)
		}

		t, err := s.execute(ctx, arg)

		switch {
		case err == nil:
			return t, nil
		case isRejection(err):
			l.Info().Err(err).Int64("from_account_id", arg.FromAccountID).
				Int64("to_account_id", arg.ToAccountID).Msg("rejected transfer")
			return domain.Transfer{}, err
		case errors.Is(err, domain.ErrConflict):
			lastErr = err
			continue
		}

		l.Error().Err(err).Msg("transfer store failure")

		return domain.Transfer{}, fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
	}

	l.Error().Err(lastErr).Int("retries", s.maxRetries).Msg("transfer retries exhausted")

	return domain.Transfer{}, fmt.Errorf("%w: %w", domain.ErrTransferFailed, lastErr)
}

// execute performs one attempt inside a single store transaction.
func (s *Service) execute(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	var result domain.Transfer

	err := s.repo.ExecTx(ctx, func(tx domain.StoreTx) error {
		from, err := tx.GetAccount(ctx, arg.FromAccountID)
		if err != nil {
			return accountError("from", arg.FromAccountID, err)
		}

		to, err := tx.GetAccount(ctx, arg.ToAccountID)
		if err != nil {
			return accountError("to", arg.ToAccountID, err)
		}

		if err := validate(arg, from, to); err != nil {
			return err
		}

		from.Balance = from.Balance.Sub(arg.Amount)
		to.Balance = to.Balance.Add(arg.Amount)

		first, second := from, to
		if second.ID < first.ID {
			first, second = second, first
		}

		if _, err := tx.SaveAccount(ctx, first); err != nil {
			return err
		}

		if _, err := tx.SaveAccount(ctx, second); err != nil {
			return err
		}

		result, err = tx.AppendTransfer(ctx, arg)
		if err != nil {
			return err
		}

		for _, e := range []struct {
			account domain.Account
			txnType string
		}{
			{from, domain.EntryDebit},
			{to, domain.EntryCredit},
		} {
			_, err = tx.AppendEntry(ctx, domain.CreateEntryParams{
				UserID:      e.account.OwnerID,
				AccountID:   e.account.ID,
				TransferID:  result.ID,
				TxnType:     e.txnType,
				Category:    domain.CategoryTransfer,
				Amount:      arg.Amount,
				Description: arg.Description,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	return result, err
}

// validate checks the request against the current state of both accounts.
func validate(arg domain.CreateTransferParams, from, to domain.Account) error {
	if from.OwnerID != arg.UserID {
		return domain.ErrInvalidOwner
	}

	if from.ID == to.ID {
		return domain.ErrSameAccount
	}

	if from.Currency != to.Currency {
		return domain.ErrCurrencyMismatch
	}

	if from.Balance.LessThan(arg.Amount) {
		return domain.ErrInsufficientBalance
	}

	if to.Balance.Add(arg.Amount).GreaterThan(moneypkg.MaxAmount) {
		return domain.ErrBalanceLimit
	}

	return nil
}

func accountError(role string, id int64, err error) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		return &domain.AccountNotFoundError{Role: role, AccountID: id}
	}

	return err
}

func isRejection(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidAmount,
		domain.ErrAccountNotFound,
		domain.ErrInvalidOwner,
		domain.ErrSameAccount,
		domain.ErrCurrencyMismatch,
		domain.ErrInsufficientBalance,
		domain.ErrBalanceLimit,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCommitted
	case errors.Is(err, domain.ErrTransferFailed):
		return metrics.OutcomeFailed
	}

	return metrics.OutcomeRejected
}

// Get returns the transfer with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	return s.repo.Get(ctx, id)
}

// List returns the transfers made by the user.
func (s *Service) List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error) {
	return s.repo.List(ctx, arg)
}
