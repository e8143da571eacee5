package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/category"
)

type categoryResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Type      category.Type `json:"type"`
	CreatedAt time.Time     `json:"createdAt"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
	}
}

func toResponseList(categories []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toResponse(c)
	}

	return resp
}
