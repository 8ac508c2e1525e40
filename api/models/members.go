package models

import (
	"time"

	"github.com/alex-pricope/coop-voting-system/storage"
)

type MemberCreateRequest struct {
	CPF  string `json:"cpf"`
	Name string `json:"nome"`
}

type MemberUpdateRequest struct {
	Active *bool `json:"ativo"`
}

type MemberResponse struct {
	ID        string    `json:"id"`
	CPF       string    `json:"cpf"`
	Name      string    `json:"nome"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"dataCadastro"`
}

func TransformMemberFromStorage(m *storage.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		CPF:       m.CPF,
		Name:      m.Name,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}
