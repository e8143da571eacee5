package setting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/networth/internal/setting"
	"github.com/MrJamesThe3rd/networth/internal/validate"
)

func TestService_Get(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *setting.MockRepository)
		want      string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Stored",
			setupMock: func(m *setting.MockRepository) {
				m.EXPECT().GetSetting(gomock.Any(), setting.KeyCurrency).Return("EUR", nil)
			},
			want: "EUR",
		},
		{
			name: "LazyDefault",
			setupMock: func(m *setting.MockRepository) {
				m.EXPECT().GetSetting(gomock.Any(), setting.KeyCurrency).Return("", setting.ErrNotFound)
				m.EXPECT().UpsertSetting(gomock.Any(), setting.KeyCurrency, "USD").Return(nil)
			},
			want: "USD",
		},
		{
			name: "StoreError",
			setupMock: func(m *setting.MockRepository) {
				m.EXPECT().GetSetting(gomock.Any(), setting.KeyCurrency).Return("", errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name: "DefaultWriteFails",
			setupMock: func(m *setting.MockRepository) {
				m.EXPECT().GetSetting(gomock.Any(), setting.KeyCurrency).Return("", setting.ErrNotFound)
				m.EXPECT().UpsertSetting(gomock.Any(), setting.KeyCurrency, "USD").Return(errors.New("read only"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := setting.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := setting.NewService(repo, "USD").Currency(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Update(t *testing.T) {
	t.Run("Upserts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := setting.NewMockRepository(ctrl)
		repo.EXPECT().UpsertSetting(gomock.Any(), setting.KeyCurrency, "GBP").Return(nil)

		got, err := setting.NewService(repo, "USD").Update(context.Background(), setting.UpdateParams{Currency: "GBP"})
		require.NoError(t, err)
		assert.Equal(t, "GBP", got.Currency)
	})

	t.Run("LongLabelStoredAsSent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		label := " Bitcoin (satoshis) "

		repo := setting.NewMockRepository(ctrl)
		repo.EXPECT().UpsertSetting(gomock.Any(), setting.KeyCurrency, label).Return(nil)

		got, err := setting.NewService(repo, "USD").Update(context.Background(), setting.UpdateParams{Currency: label})
		require.NoError(t, err)
		assert.Equal(t, label, got.Currency)
	})

	t.Run("FreeFormAccepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := setting.NewMockRepository(ctrl)
		repo.EXPECT().UpsertSetting(gomock.Any(), setting.KeyCurrency, "sats").Return(nil)

		_, err := setting.NewService(repo, "USD").Update(context.Background(), setting.UpdateParams{Currency: "sats"})
		assert.NoError(t, err)
	})

	t.Run("BlankRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := setting.NewService(setting.NewMockRepository(ctrl), "USD")

		_, err := svc.Update(context.Background(), setting.UpdateParams{Currency: "   "})

		var vErr *validate.Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "currency is required", vErr.Message)
	})
}
