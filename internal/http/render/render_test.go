package render_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/category"
	"github.com/MrJamesThe3rd/networth/internal/http/render"
	"github.com/MrJamesThe3rd/networth/internal/rule"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
	"github.com/MrJamesThe3rd/networth/internal/validate"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"Validation", validate.Errorf("type", "type must be one of INCOME, EXPENSE"), http.StatusBadRequest, "type must be one of INCOME, EXPENSE"},
		{"WrappedValidation", fmt.Errorf("row 3: %w", validate.Errorf("amount", "amount is required")), http.StatusBadRequest, "row 3: amount is required"},
		{"UnknownReference", transaction.ErrUnknownReference, http.StatusBadRequest, "account or category does not exist"},
		{"LinkedTransactions", &category.LinkedTransactionsError{Count: 2}, http.StatusConflict, "Cannot delete: this category has 2 linked transactions."},
		{"CategoryInUse", fmt.Errorf("delete: %w", category.ErrInUse), http.StatusConflict, "delete: category is in use"},
		{"DuplicateRule", rule.ErrDuplicate, http.StatusConflict, "a rule with this pattern already exists"},
		{"AccountNotFound", account.ErrNotFound, http.StatusNotFound, "account not found"},
		{"WrappedNotFound", fmt.Errorf("get: %w", transaction.ErrNotFound), http.StatusNotFound, "get: transaction not found"},
		{"Unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/anything", nil)

			render.Error(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	render.Success(rec)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
