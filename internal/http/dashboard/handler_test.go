package dashboard_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/dashboard"
	dashboardhttp "github.com/MrJamesThe3rd/networth/internal/http/dashboard"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

func serve(t *testing.T, setup func(r *dashboard.MockRepository, c *dashboard.MockCurrencySource)) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := dashboard.NewMockRepository(ctrl)
	currency := dashboard.NewMockCurrencySource(ctrl)
	setup(repo, currency)

	router := chi.NewRouter()
	router.Route("/dashboard", dashboardhttp.NewHandler(dashboard.NewService(repo, currency)).Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))

	return rec
}

func TestHandler_Summary(t *testing.T) {
	rec := serve(t, func(r *dashboard.MockRepository, c *dashboard.MockCurrencySource) {
		r.EXPECT().ListLedgers(gomock.Any()).Return([]dashboard.Ledger{
			{
				Account: &account.Account{ID: uuid.New(), Name: "Main", Type: account.TypeChecking, Nature: account.NatureAsset},
				Transactions: []*transaction.Transaction{
					{Amount: decimal.RequireFromString("100.25"), Type: transaction.TypeIncome, Date: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
				},
			},
			{
				Account: &account.Account{ID: uuid.New(), Name: "Card", Type: account.TypeCreditCard, Nature: account.NatureLiability},
				Transactions: []*transaction.Transaction{
					{Amount: decimal.RequireFromString("40"), Type: transaction.TypeExpense, Date: time.Date(2023, 2, 5, 0, 0, 0, 0, time.UTC)},
				},
			},
		}, nil)
		c.EXPECT().Currency(gomock.Any()).Return("EUR", nil)
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalNetWorth   float64 `json:"totalNetWorth"`
		AccountBalances []struct {
			Name    string  `json:"name"`
			Nature  string  `json:"nature"`
			Balance float64 `json:"balance"`
		} `json:"accountBalances"`
		NetWorthHistory []struct {
			Month    string  `json:"month"`
			NetWorth float64 `json:"netWorth"`
		} `json:"netWorthHistory"`
		Currency string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.InDelta(t, 60.25, body.TotalNetWorth, 0.0001)
	assert.Equal(t, "EUR", body.Currency)
	require.Len(t, body.AccountBalances, 2)
	assert.Equal(t, "LIABILITY", body.AccountBalances[1].Nature)
	assert.InDelta(t, 40, body.AccountBalances[1].Balance, 0.0001)
	require.Len(t, body.NetWorthHistory, 2)
	assert.Equal(t, "2023-02", body.NetWorthHistory[1].Month)
	assert.InDelta(t, 60.25, body.NetWorthHistory[1].NetWorth, 0.0001)
}

func TestHandler_SummaryEmpty(t *testing.T) {
	rec := serve(t, func(r *dashboard.MockRepository, c *dashboard.MockCurrencySource) {
		r.EXPECT().ListLedgers(gomock.Any()).Return(nil, nil)
		c.EXPECT().Currency(gomock.Any()).Return("USD", nil)
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"totalNetWorth": 0,
		"monthlyIncome": 0,
		"monthlyExpense": 0,
		"netCashFlow": 0,
		"accountBalances": [],
		"netWorthHistory": [],
		"currency": "USD"
	}`, rec.Body.String())
}

func TestHandler_SummaryStoreError(t *testing.T) {
	rec := serve(t, func(r *dashboard.MockRepository, _ *dashboard.MockCurrencySource) {
		r.EXPECT().ListLedgers(gomock.Any()).Return(nil, errors.New("connection reset"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
