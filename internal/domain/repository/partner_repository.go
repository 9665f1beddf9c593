package repository

import "github.com/gestaolivre/erp-api/internal/domain/entity"

// PartnerRepository define a porta de persistência para Partner.
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	GetByDocument(document string) (*entity.Partner, error)
	Update(partner *entity.Partner) error
	// SearchByName busca por nome normalizado (sem acentos, caixa baixa).
	SearchByName(normalizedName string, limit, offset int) ([]*entity.Partner, error)
	List(partnerType string, limit, offset int) ([]*entity.Partner, error)
	Delete(id string) error
}
