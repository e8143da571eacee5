package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/dashboard"
	"github.com/MrJamesThe3rd/networth/internal/http/render"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
}

type balanceResponse struct {
	ID      uuid.UUID      `json:"id"`
	Name    string         `json:"name"`
	Type    account.Type   `json:"type"`
	Nature  account.Nature `json:"nature"`
	Balance float64        `json:"balance"`
}

type historyResponse struct {
	Month    string  `json:"month"`
	NetWorth float64 `json:"netWorth"`
}

type summaryResponse struct {
	TotalNetWorth   float64           `json:"totalNetWorth"`
	MonthlyIncome   float64           `json:"monthlyIncome"`
	MonthlyExpense  float64           `json:"monthlyExpense"`
	NetCashFlow     float64           `json:"netCashFlow"`
	AccountBalances []balanceResponse `json:"accountBalances"`
	NetWorthHistory []historyResponse `json:"netWorthHistory"`
	Currency        string            `json:"currency"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Summary(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(report))
}

func toResponse(rep *dashboard.Report) summaryResponse {
	resp := summaryResponse{
		TotalNetWorth:   rep.TotalNetWorth.InexactFloat64(),
		MonthlyIncome:   rep.MonthlyIncome.InexactFloat64(),
		MonthlyExpense:  rep.MonthlyExpense.InexactFloat64(),
		NetCashFlow:     rep.NetCashFlow.InexactFloat64(),
		AccountBalances: make([]balanceResponse, len(rep.AccountBalances)),
		NetWorthHistory: make([]historyResponse, len(rep.NetWorthHistory)),
		Currency:        rep.Currency,
	}

	for i, b := range rep.AccountBalances {
		resp.AccountBalances[i] = balanceResponse{
			ID:      b.ID,
			Name:    b.Name,
			Type:    b.Type,
			Nature:  b.Nature,
			Balance: b.Balance.InexactFloat64(),
		}
	}

	for i, m := range rep.NetWorthHistory {
		resp.NetWorthHistory[i] = historyResponse{Month: m.Month, NetWorth: m.NetWorth.InexactFloat64()}
	}

	return resp
}
