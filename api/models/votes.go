package models

import (
	"time"

	"github.com/alex-pricope/coop-voting-system/storage"
)

type VoteCastRequest struct {
	MemberID string `json:"idAssociado"`
	Choice   string `json:"opcao"`
	CPF      string `json:"cpf,omitempty"`
}

type VoteResponse struct {
	ID        int64     `json:"id"`
	MemberID  string    `json:"idAssociado"`
	Choice    string    `json:"opcao"`
	CastAt    time.Time `json:"dataHoraVoto"`
	SessionID int64     `json:"sessaoId"`
}

func TransformVoteFromStorage(v *storage.Vote) VoteResponse {
	return VoteResponse{
		ID:        v.ID,
		MemberID:  v.MemberID,
		Choice:    v.Choice,
		CastAt:    v.CastAt,
		SessionID: v.SessionID,
	}
}
