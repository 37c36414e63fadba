package entryservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
)

func TestList(t *testing.T) {
	t.Parallel()

	arg := domain.ListEntriesParams{UserID: 23, AccountID: 1, Limit: 10}

	testCases := []struct {
		name    string
		want    []domain.Entry
		repoErr error
	}{
		{
			name: "OK",
			want: []domain.Entry{
				{ID: 1, UserID: 23, AccountID: 1, TxnType: domain.EntryDebit, Amount: decimal.NewFromInt(5)},
			},
		},
		{
			name:    "RepoError",
			repoErr: errorspkg.ErrInternal,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			repo.EXPECT().List(gomock.Any(), gomock.Eq(arg)).Times(1).Return(tc.want, tc.repoErr)

			got, err := New(repo).List(context.Background(), arg)
			require.ErrorIs(t, err, tc.repoErr)
			require.Equal(t, tc.want, got)
		})
	}
}
