package dto

import "time"

// AdjustStockRequest body para POST /api/inventory/adjustments.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"required"`
}

// StockMovementResponse resposta de movimento de estoque.
type StockMovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	ReferenceID string    `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// StockMovementListResponse listagem de movimentos.
type StockMovementListResponse struct {
	Movements []StockMovementResponse `json:"movements"`
	Page      PageResponse            `json:"page"`
}
