// Package entryservice manages business logic layer of account entries.
package entryservice

import (
	"context"

	"github.com/chris7683/CAEAPP/internal/domain"
)

// Repo provides data access layer interface needed by entry service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package entryservice
type Repo interface {
	List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
}

// Service facilitates entry service layer logic.
type Service struct {
	repo Repo
}

// New returns entry service struct to manage the transaction feed.
func New(er Repo) *Service {
	return &Service{repo: er}
}

// List returns the entries of accounts owned by the user, newest last.
//
// Entries are keyed by account owner, so a user sees the debits of transfers they
// made and the credits of transfers they received.
func (s *Service) List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	return s.repo.List(ctx, arg)
}
