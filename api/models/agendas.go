package models

import (
	"time"

	"github.com/alex-pricope/coop-voting-system/storage"
)

type AgendaCreateRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
}

type AgendaResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	CreatedAt   time.Time `json:"dataCriacao"`
}

func TransformAgendaFromStorage(a *storage.AgendaItem) AgendaResponse {
	return AgendaResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}
