package accountservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/pkg/currencypkg"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)

	want := domain.Account{ID: 1, OwnerID: 23, Balance: decimal.Zero, Currency: currencypkg.USD}

	repo.EXPECT().
		Create(gomock.Any(), domain.CreateAccountParams{OwnerID: 23, Balance: decimal.Zero, Currency: currencypkg.USD}).
		Times(1).
		Return(want, nil)

	got, err := New(repo).Create(context.Background(), 23, currencypkg.USD)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestGet(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)

	repo.EXPECT().Get(gomock.Any(), int64(404)).Times(1).Return(domain.Account{}, domain.ErrAccountNotFound)

	_, err := New(repo).Get(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name             string
		pageSize, pageID int32
		wantOffset       int32
		repoErr          error
	}{
		{name: "FirstPage", pageSize: 5, pageID: 1, wantOffset: 0},
		{name: "ThirdPage", pageSize: 5, pageID: 3, wantOffset: 10},
		{name: "RepoError", pageSize: 5, pageID: 1, wantOffset: 0, repoErr: errorspkg.ErrInternal},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)

			arg := domain.ListAccountsParams{OwnerID: 23, Limit: tc.pageSize, Offset: tc.wantOffset}
			repo.EXPECT().List(gomock.Any(), arg).Times(1).Return([]domain.Account{}, tc.repoErr)

			_, err := New(repo).List(context.Background(), 23, tc.pageSize, tc.pageID)
			require.ErrorIs(t, err, tc.repoErr)
		})
	}
}
