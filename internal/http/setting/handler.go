package setting

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/networth/internal/http/render"
	"github.com/MrJamesThe3rd/networth/internal/setting"
)

type Handler struct {
	svc *setting.Service
}

func NewHandler(svc *setting.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type settingsResponse struct {
	Currency string `json:"currency"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, settingsResponse{Currency: s.Currency})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var params setting.UpdateParams
	if err := render.Decode(r, &params); err != nil {
		render.Error(w, r, err)
		return
	}

	s, err := h.svc.Update(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, settingsResponse{Currency: s.Currency})
}
