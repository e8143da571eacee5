package transaction

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/networth/internal/http/render"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
	"github.com/MrJamesThe3rd/networth/internal/validate"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.updateNote)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	AccountID   string           `json:"accountId"`
	CategoryID  string           `json:"categoryId"`
	Amount      json.RawMessage  `json:"amount"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	Note        *string          `json:"note"`
	Date        string           `json:"date"`
}

func (req createTransactionRequest) params() (transaction.CreateParams, error) {
	amount, err := validate.Amount("amount", req.Amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	date, err := validate.Date("date", req.Date)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	return transaction.CreateParams{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Amount:      amount,
		Type:        req.Type,
		Description: req.Description,
		Note:        req.Note,
		Date:        date,
	}, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		render.Error(w, r, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	// Re-read to pick up the joined account and category names.
	created, err := h.svc.Get(r.Context(), tx.ID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := transaction.ListFilter{
		Search: q.Get("search"),
		Sort:   transaction.ParseSort(q.Get("sort")),
	}

	var err error

	if filter.AccountID, err = render.OptionalID(r, "accountId"); err != nil {
		render.Error(w, r, err)
		return
	}

	if filter.CategoryID, err = render.OptionalID(r, "categoryId"); err != nil {
		render.Error(w, r, err)
		return
	}

	if s := q.Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

type updateNoteRequest struct {
	Note *string `json:"note"`
}

// updateNote only touches the note; a null or empty note clears it.
func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updateNoteRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	var note string
	if req.Note != nil {
		note = *req.Note
	}

	tx, err := h.svc.UpdateNote(r.Context(), id, note)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
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
