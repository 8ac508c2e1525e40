package models

import (
	"time"

	"github.com/alex-pricope/coop-voting-system/voting"
)

type ResultResponse struct {
	SessionID   int64     `json:"sessaoId"`
	AgendaID    int64     `json:"pautaId"`
	AgendaTitle string    `json:"tituloPauta"`
	Total       int       `json:"totalVotos"`
	Yes         int       `json:"votosSim"`
	No          int       `json:"votosNao"`
	YesPercent  float64   `json:"percentualSim"`
	NoPercent   float64   `json:"percentualNao"`
	Approved    bool      `json:"aprovado"`
	Status      string    `json:"status"`
	Final       bool      `json:"final"`
	TalliedAt   time.Time `json:"dataApuracao"`
}

func TransformResult(r *voting.Result) ResultResponse {
	return ResultResponse{
		SessionID:   r.SessionID,
		AgendaID:    r.AgendaID,
		AgendaTitle: r.AgendaTitle,
		Total:       r.Total,
		Yes:         r.Yes,
		No:          r.No,
		YesPercent:  r.YesPercent,
		NoPercent:   r.NoPercent,
		Approved:    r.Approved,
		Status:      string(r.Status),
		Final:       r.Final,
		TalliedAt:   r.TalliedAt,
	}
}
