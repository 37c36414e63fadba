// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chris7683/CAEAPP/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create provisions an empty account for the given owner and currency.
func (s *Service) Create(ctx context.Context, ownerID int64, currency string) (domain.Account, error) {
	arg := domain.CreateAccountParams{
		OwnerID:  ownerID,
		Balance:  decimal.Zero,
		Currency: currency,
	}

	return s.repo.Create(ctx, arg)
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, ownerID int64, pageSize, pageID int32) ([]domain.Account, error) {
	arg := domain.ListAccountsParams{
		OwnerID: ownerID,
		Limit:   pageSize,
		Offset:  (pageID - 1) * pageSize,
	}

	return s.repo.List(ctx, arg)
}
