package entity

import "time"

// Tipos de movimento de estoque.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // saída
)

// StockMovement é o registro imutável de auditoria de uma alteração de estoque.
// Criado exatamente uma vez por item de documento (ou ajuste manual); nunca
// atualizado nem excluído.
type StockMovement struct {
	ID          string
	ProductID   string
	UserID      string // ator que originou o movimento
	Type        string // IN ou OUT
	Quantity    int64  // sempre positiva; o sinal é dado pelo tipo
	Reason      string // "Venda", "Compra", "Ajuste manual", ...
	ReferenceID string // ID da venda/compra de origem; vazio em ajustes manuais
	CreatedAt   time.Time
}
