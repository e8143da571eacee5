package category_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/networth/internal/category"
	categoryhttp "github.com/MrJamesThe3rd/networth/internal/http/category"
)

func setup(t *testing.T) (*category.MockRepository, chi.Router) {
	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)

	r := chi.NewRouter()
	r.Route("/categories", categoryhttp.NewHandler(category.NewService(repo)).Routes)

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

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		countErr   error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Unused",
			count:      0,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true}`,
		},
		{
			name:       "OneLinked",
			count:      1,
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Cannot delete: this category has 1 linked transaction."}`,
		},
		{
			name:       "ManyLinked",
			count:      12,
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Cannot delete: this category has 12 linked transactions."}`,
		},
		{
			name:       "CountFails",
			countErr:   errors.New("timeout"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, r := setup(t)
			id := uuid.New()

			repo.EXPECT().CountTransactions(gomock.Any(), id).Return(tt.count, tt.countErr)

			if tt.count == 0 && tt.countErr == nil {
				repo.EXPECT().DeleteCategory(gomock.Any(), id).Return(nil)
			}

			rec := serve(r, http.MethodDelete, "/categories/"+id.String(), "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		repo, r := setup(t)
		repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)

		rec := serve(r, http.MethodPost, "/categories", `{"name":"Salary","type":"INCOME"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("BadType", func(t *testing.T) {
		_, r := setup(t)

		rec := serve(r, http.MethodPost, "/categories", `{"name":"Misc","type":"TRANSFER"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "type must be one of INCOME, EXPENSE", errorOf(t, rec))
	})
}

func TestHandler_List(t *testing.T) {
	t.Run("TypeFilter", func(t *testing.T) {
		repo, r := setup(t)
		typ := category.TypeExpense

		repo.EXPECT().
			ListCategories(gomock.Any(), category.ListFilter{Type: &typ}).
			Return([]*category.Category{{ID: uuid.New(), Name: "Rent", Type: typ}}, nil)

		rec := serve(r, http.MethodGet, "/categories?type=EXPENSE", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "Rent", body[0]["name"])
	})

	t.Run("BadTypeFilter", func(t *testing.T) {
		_, r := setup(t)

		rec := serve(r, http.MethodGet, "/categories?type=HOLD", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_UpdateNotFound(t *testing.T) {
	repo, r := setup(t)
	id := uuid.New()

	repo.EXPECT().GetCategory(gomock.Any(), id).Return(nil, category.ErrNotFound)

	rec := serve(r, http.MethodPut, "/categories/"+id.String(), `{"name":"Food"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "category not found", errorOf(t, rec))
}
