package ledger

import (
	"context"
	"time"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// QueryService leituras do histórico de movimentos (fora de transação).
type QueryService struct {
	movRepo repository.StockMovementRepository
}

// NewQueryService constrói o serviço de consulta.
func NewQueryService(movRepo repository.StockMovementRepository) *QueryService {
	return &QueryService{movRepo: movRepo}
}

// ListByProduct lista movimentos de um produto com paginação e filtro de período.
func (s *QueryService) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) (*dto.StockMovementListResponse, error) {
	movs, err := s.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.StockMovementListResponse{
		Movements: make([]dto.StockMovementResponse, 0, len(movs)),
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, m := range movs {
		out.Movements = append(out.Movements, dto.StockMovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			UserID:      m.UserID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			ReferenceID: m.ReferenceID,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}
