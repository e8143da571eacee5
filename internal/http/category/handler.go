package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/networth/internal/category"
	"github.com/MrJamesThe3rd/networth/internal/http/render"
	"github.com/MrJamesThe3rd/networth/internal/validate"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
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
	var filter category.ListFilter

	if s := r.URL.Query().Get("type"); s != "" {
		t := category.Type(s)
		if t != category.TypeIncome && t != category.TypeExpense {
			render.Error(w, r, validate.Errorf("type", "type must be INCOME or EXPENSE"))
			return
		}

		filter.Type = &t
	}

	categories, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(categories))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params category.CreateParams
	if err := render.Decode(r, &params); err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var params category.UpdateParams
	if err := render.Decode(r, &params); err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(c))
}

// delete answers 409 with the linked-transaction count while any
// transaction still references the category.
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
