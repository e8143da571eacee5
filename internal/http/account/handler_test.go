package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/networth/internal/account"
	accounthttp "github.com/MrJamesThe3rd/networth/internal/http/account"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

type fixture struct {
	accounts *account.MockRepository
	txs      *transaction.MockRepository
	router   chi.Router
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		accounts: account.NewMockRepository(ctrl),
		txs:      transaction.NewMockRepository(ctrl),
		router:   chi.NewRouter(),
	}

	h := accounthttp.NewHandler(account.NewService(f.accounts), transaction.NewService(f.txs))
	f.router.Route("/accounts", h.Routes)

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Error
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(f *fixture)
		wantStatus int
		wantError  string
	}{
		{
			name: "Created",
			body: `{"name":"Savings","type":"SAVINGS"}`,
			setup: func(f *fixture) {
				f.accounts.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.New()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingName",
			body:       `{"type":"CASH"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "name is required",
		},
		{
			name:       "InvalidNature",
			body:       `{"name":"Loan","type":"FUNDING","nature":"EQUITY"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "nature must be one of ASSET, LIABILITY",
		},
		{
			name:       "MalformedBody",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			rec := f.do(http.MethodPost, "/accounts", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorOf(t, rec))
			}
		})
	}
}

func TestHandler_CreateResponse(t *testing.T) {
	f := newFixture(t)
	f.accounts.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil)

	rec := f.do(http.MethodPost, "/accounts", `{"name":"Visa","type":"CREDIT_CARD","nature":"LIABILITY"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Visa", body["name"])
	assert.Equal(t, "LIABILITY", body["nature"])
	assert.Equal(t, false, body["isArchived"])
}

func TestHandler_Get(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.accounts.EXPECT().GetAccount(gomock.Any(), id).Return(&account.Account{ID: id, Name: "Main", Type: account.TypeChecking, Nature: account.NatureAsset}, nil)
	f.txs.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{AccountID: &id, Sort: transaction.SortDateAsc}).
		Return([]*transaction.Transaction{
			{ID: uuid.New(), AccountID: id, Amount: decimal.RequireFromString("19.99"), Type: transaction.TypeExpense, Description: "Books", CategoryName: "Leisure", Date: time.Now()},
		}, nil)

	rec := f.do(http.MethodGet, "/accounts/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Name             string `json:"name"`
		TransactionCount int    `json:"transactionCount"`
		Transactions     []struct {
			Amount   float64 `json:"amount"`
			Category string  `json:"category"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "Main", body.Name)
	assert.Equal(t, 1, body.TransactionCount)
	require.Len(t, body.Transactions, 1)
	assert.InDelta(t, 19.99, body.Transactions[0].Amount, 0.0001)
	assert.Equal(t, "Leisure", body.Transactions[0].Category)
}

func TestHandler_GetNotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.accounts.EXPECT().GetAccount(gomock.Any(), id).Return(nil, account.ErrNotFound)

	rec := f.do(http.MethodGet, "/accounts/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "account not found", errorOf(t, rec))
}

func TestHandler_InvalidID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodDelete, "/accounts/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id", errorOf(t, rec))
}

func TestHandler_Update(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.accounts.EXPECT().GetAccount(gomock.Any(), id).Return(&account.Account{ID: id, Name: "Old", Type: account.TypeCash, Nature: account.NatureAsset}, nil)
	f.accounts.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).Return(nil)

	rec := f.do(http.MethodPatch, "/accounts/"+id.String(), `{"isArchived":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["isArchived"])
	assert.Equal(t, "Old", body["name"])
}

func TestHandler_UpdateInvalidType(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPut, "/accounts/"+uuid.NewString(), `{"type":"VAULT"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.accounts.EXPECT().DeleteAccount(gomock.Any(), id).Return(nil)

	rec := f.do(http.MethodDelete, "/accounts/"+id.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestHandler_List(t *testing.T) {
	f := newFixture(t)

	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(nil, nil)

	rec := f.do(http.MethodGet, "/accounts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
