package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/dashboard"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

func TestService_Summary(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(r *dashboard.MockRepository, c *dashboard.MockCurrencySource)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(r *dashboard.MockRepository, c *dashboard.MockCurrencySource) {
				r.EXPECT().ListLedgers(gomock.Any()).Return([]dashboard.Ledger{
					ledger("Main", account.NatureAsset, tx(transaction.TypeIncome, "42", day(2020, 1, 1))),
				}, nil)
				c.EXPECT().Currency(gomock.Any()).Return("EUR", nil)
			},
		},
		{
			name: "LedgerError",
			setupMock: func(r *dashboard.MockRepository, _ *dashboard.MockCurrencySource) {
				r.EXPECT().ListLedgers(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name: "CurrencyError",
			setupMock: func(r *dashboard.MockRepository, c *dashboard.MockCurrencySource) {
				r.EXPECT().ListLedgers(gomock.Any()).Return(nil, nil)
				c.EXPECT().Currency(gomock.Any()).Return("", errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := dashboard.NewMockRepository(ctrl)
			currency := dashboard.NewMockCurrencySource(ctrl)
			tt.setupMock(repo, currency)

			got, err := dashboard.NewService(repo, currency).Summary(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "EUR", got.Currency)
			assert.True(t, got.TotalNetWorth.Equal(dec("42")))
			require.Len(t, got.NetWorthHistory, 1)
			assert.Equal(t, "2020-01", got.NetWorthHistory[0].Month)
		})
	}
}
