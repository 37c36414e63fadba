// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/pkg/currencypkg"
	"github.com/chris7683/CAEAPP/pkg/randompkg"
)

// AccountCreator is satisfied by every account repository.
type AccountCreator interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
}

// SeedAccount creates an account with the given balance.
func SeedAccount(t *testing.T, repo AccountCreator, ownerID int64, balance, currency string) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		OwnerID:  ownerID,
		Balance:  decimal.RequireFromString(balance),
		Currency: currency,
	}

	account, err := repo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("repo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccountWith1000USDBalance creates USD Account with 1000 USD on balance.
func SeedAccountWith1000USDBalance(t *testing.T, repo AccountCreator, ownerID int64) domain.Account {
	t.Helper()

	return SeedAccount(t, repo, ownerID, "1000.00", currencypkg.USD)
}

// RandomAccount returns an account that is not stored anywhere.
func RandomAccount(ownerID int64) domain.Account {
	return domain.Account{
		ID:        randompkg.AccountID(),
		OwnerID:   ownerID,
		Balance:   randompkg.MoneyBetween(0, 10_000),
		Currency:  randompkg.Currency(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}
