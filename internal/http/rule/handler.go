package rule

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/http/render"
	"github.com/MrJamesThe3rd/networth/internal/rule"
)

type Handler struct {
	svc *rule.Service
}

func NewHandler(svc *rule.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/suggest", h.suggest)
	r.Delete("/{id}", h.delete)
}

type ruleResponse struct {
	ID         uuid.UUID `json:"id"`
	Pattern    string    `json:"pattern"`
	CategoryID uuid.UUID `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(r *rule.Rule) ruleResponse {
	return ruleResponse{
		ID:         r.ID,
		Pattern:    r.Pattern,
		CategoryID: r.CategoryID,
		CreatedAt:  r.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rl := range rules {
		resp[i] = toResponse(rl)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params rule.CreateParams
	if err := render.Decode(r, &params); err != nil {
		render.Error(w, r, err)
		return
	}

	rl, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(rl))
}

type suggestResponse struct {
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")

	categoryID, err := h.svc.Suggest(r.Context(), desc)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, suggestResponse{Description: desc, CategoryID: categoryID})
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
