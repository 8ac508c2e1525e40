package models

import (
	"time"

	"github.com/alex-pricope/coop-voting-system/voting"
)

type SessionOpenRequest struct {
	DurationMinutes *int `json:"duracaoMinutos"`
}

type SessionResponse struct {
	ID          int64     `json:"id"`
	AgendaID    int64     `json:"pautaId"`
	AgendaTitle string    `json:"tituloPauta"`
	OpenedAt    time.Time `json:"dataAbertura"`
	ClosesAt    time.Time `json:"dataFechamento"`
	Closed      bool      `json:"encerrada"`
	Status      string    `json:"status"`
}

func TransformSessionState(s *voting.SessionState) SessionResponse {
	r := SessionResponse{
		ID:       s.Session.ID,
		AgendaID: s.Session.AgendaID,
		OpenedAt: s.Session.OpenedAt,
		ClosesAt: s.Session.ClosesAt,
		Closed:   s.Session.Closed,
		Status:   string(s.Status),
	}
	if s.Agenda != nil {
		r.AgendaTitle = s.Agenda.Title
	}
	return r
}
