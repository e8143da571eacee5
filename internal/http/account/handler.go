package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/http/render"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

type Handler struct {
	svc   *account.Service
	txSvc *transaction.Service
}

func NewHandler(svc *account.Service, txSvc *transaction.Service) *Handler {
	return &Handler{svc: svc, txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(accounts))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params account.CreateParams
	if err := render.Decode(r, &params); err != nil {
		render.Error(w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(a))
}

// get includes the account's transactions, oldest first.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	txs, err := h.txSvc.List(r.Context(), transaction.ListFilter{AccountID: &id, Sort: transaction.SortDateAsc})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toDetailResponse(a, txs))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var params account.UpdateParams
	if err := render.Decode(r, &params); err != nil {
		render.Error(w, r, err)
		return
	}

	a, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(a))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.Success(w)
}
