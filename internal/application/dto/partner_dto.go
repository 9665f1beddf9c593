package dto

import "time"

// CreatePartnerRequest body para POST /api/partners.
type CreatePartnerRequest struct {
	Name     string `json:"name" validate:"required"`
	Document string `json:"document" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=CUSTOMER SUPPLIER BOTH"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdatePartnerRequest body para PUT /api/partners/:id.
type UpdatePartnerRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type" validate:"omitempty,oneof=CUSTOMER SUPPLIER BOTH"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Active  *bool  `json:"active"`
}

// PartnerResponse resposta de parceiro.
type PartnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Type      string    `json:"type"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// PartnerListResponse listagem paginada de parceiros.
type PartnerListResponse struct {
	Partners []PartnerResponse `json:"partners"`
	Page     PageResponse      `json:"page"`
}
