package transaction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	txhttp "github.com/MrJamesThe3rd/networth/internal/http/transaction"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

func setup(t *testing.T) (*transaction.MockRepository, chi.Router) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	r := chi.NewRouter()
	r.Route("/transactions", txhttp.NewHandler(transaction.NewService(repo)).Routes)

	return repo, r
}

func serve(r chi.Router, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body["error"]
}

func TestHandler_Create(t *testing.T) {
	accountID := uuid.New()
	categoryID := uuid.New()

	body := func(amount, typ string) string {
		return `{"accountId":"` + accountID.String() + `","categoryId":"` + categoryID.String() +
			`","amount":` + amount + `,"type":"` + typ + `","description":"Groceries","date":"2024-04-02"}`
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"HoldType", body("10", "HOLD"), http.StatusBadRequest, "type must be one of INCOME, EXPENSE"},
		{"LowercaseType", body("10", "expense"), http.StatusBadRequest, "type must be one of INCOME, EXPENSE"},
		{"ZeroAmount", body("0", "EXPENSE"), http.StatusBadRequest, "amount is required"},
		{"NegativeAmount", body("-3", "EXPENSE"), http.StatusBadRequest, "amount must be greater than 0"},
		{"SubCentAmount", body("0.001", "EXPENSE"), http.StatusBadRequest, "amount must have at most 2 decimal places"},
		{"HugeAmount", body("1e20", "EXPENSE"), http.StatusBadRequest, "amount must be less than 1000000000000"},
		{"WordAmount", body(`"lots"`, "EXPENSE"), http.StatusBadRequest, "amount must be a number"},
		{"EmptyAmount", body(`""`, "EXPENSE"), http.StatusBadRequest, "amount is required"},
		{"MissingAccount", `{"categoryId":"` + categoryID.String() + `","amount":5,"type":"INCOME","description":"x"}`, http.StatusBadRequest, "accountId is required"},
		{"BadDate", strings.Replace(body("1", "INCOME"), "2024-04-02", "02/04/2024", 1), http.StatusBadRequest, "date must be a date (YYYY-MM-DD)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := setup(t)

			rec := serve(r, http.MethodPost, "/transactions", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, errorOf(t, rec))
		})
	}

	t.Run("Created", func(t *testing.T) {
		repo, r := setup(t)
		id := uuid.New()

		repo.EXPECT().
			CreateTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
				assert.True(t, tx.Amount.Equal(decimal.RequireFromString("45.10")))
				assert.Equal(t, "2024-04-02", tx.Date.Format("2006-01-02"))
				tx.ID = id
				return nil
			})
		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{
			ID:           id,
			AccountID:    accountID,
			CategoryID:   categoryID,
			Amount:       decimal.RequireFromString("45.10"),
			Type:         transaction.TypeExpense,
			Description:  "Groceries",
			AccountName:  "Main",
			CategoryName: "Food",
		}, nil)

		rec := serve(r, http.MethodPost, "/transactions", body(`"45.10"`, "EXPENSE"))
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Amount  float64 `json:"amount"`
			Note    *string `json:"note"`
			Account struct {
				Name string `json:"name"`
			} `json:"account"`
			Category struct {
				Name string `json:"name"`
			} `json:"category"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.InDelta(t, 45.10, resp.Amount, 0.0001)
		assert.Nil(t, resp.Note)
		assert.Equal(t, "Main", resp.Account.Name)
		assert.Equal(t, "Food", resp.Category.Name)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		repo, r := setup(t)
		repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(transaction.ErrUnknownReference)

		rec := serve(r, http.MethodPost, "/transactions", body("5", "INCOME"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_List(t *testing.T) {
	accountID := uuid.New()

	t.Run("Filters", func(t *testing.T) {
		repo, r := setup(t)

		repo.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
				require.NotNil(t, f.AccountID)
				assert.Equal(t, accountID, *f.AccountID)
				assert.Nil(t, f.CategoryID)
				assert.Equal(t, transaction.TypeExpense, *f.Type)
				assert.Equal(t, "coffee", f.Search)
				assert.Equal(t, transaction.SortAmountDesc, f.Sort)
				return nil, nil
			})

		rec := serve(r, http.MethodGet, "/transactions?accountId="+accountID.String()+"&type=EXPENSE&search=coffee&sort=amount_desc", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("BadAccountID", func(t *testing.T) {
		_, r := setup(t)

		rec := serve(r, http.MethodGet, "/transactions?accountId=main", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "accountId must be a valid id", errorOf(t, rec))
	})

	t.Run("BadType", func(t *testing.T) {
		_, r := setup(t)

		rec := serve(r, http.MethodGet, "/transactions?type=HOLD", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_UpdateNote(t *testing.T) {
	repo, r := setup(t)
	id := uuid.New()

	repo.EXPECT().UpdateNote(gomock.Any(), id, (*string)(nil)).Return(nil)
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{ID: id}, nil)

	rec := serve(r, http.MethodPatch, "/transactions/"+id.String(), `{"note":null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp["note"])
}

func TestHandler_DeleteNotFound(t *testing.T) {
	repo, r := setup(t)
	id := uuid.New()

	repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(transaction.ErrNotFound)

	rec := serve(r, http.MethodDelete, "/transactions/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "transaction not found", errorOf(t, rec))
}
