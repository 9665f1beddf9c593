package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
	pkgfiscal "github.com/gestaolivre/erp-api/pkg/fiscal"
)

// PartnerUseCase CRUD de parceiros (clientes e fornecedores).
type PartnerUseCase struct {
	partnerRepo repository.PartnerRepository
}

// NewPartnerUseCase constrói o caso de uso.
func NewPartnerUseCase(partnerRepo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{partnerRepo: partnerRepo}
}

// CreatePartner cria um parceiro. Documento duplicado devolve ErrDuplicate.
func (uc *PartnerUseCase) CreatePartner(ctx context.Context, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.partnerRepo.GetByDocument(in.Document)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	partner := &entity.Partner{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Type:      in.Type,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.partnerRepo.Create(partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// GetPartner busca por ID.
func (uc *PartnerUseCase) GetPartner(ctx context.Context, id string) (*dto.PartnerResponse, error) {
	partner, err := uc.partnerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}
	return toPartnerResponse(partner), nil
}

// UpdatePartner atualiza campos editáveis. Document é imutável.
func (uc *PartnerUseCase) UpdatePartner(ctx context.Context, id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	partner, err := uc.partnerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != "" {
		partner.Name = in.Name
	}
	if in.Type != "" {
		partner.Type = in.Type
	}
	if in.Email != "" {
		partner.Email = in.Email
	}
	if in.Phone != "" {
		partner.Phone = in.Phone
	}
	if in.Address != "" {
		partner.Address = in.Address
	}
	if in.Active != nil {
		partner.Active = *in.Active
	}
	partner.UpdatedAt = time.Now()

	if err := uc.partnerRepo.Update(partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// SearchPartners busca por nome, insensível a acentos e caixa.
func (uc *PartnerUseCase) SearchPartners(ctx context.Context, name string, limit, offset int) (*dto.PartnerListResponse, error) {
	partners, err := uc.partnerRepo.SearchByName(pkgfiscal.NormalizeName(name), limit, offset)
	if err != nil {
		return nil, err
	}
	return toPartnerList(partners, limit, offset), nil
}

// ListPartners lista parceiros, com filtro opcional por tipo.
func (uc *PartnerUseCase) ListPartners(ctx context.Context, partnerType string, limit, offset int) (*dto.PartnerListResponse, error) {
	partners, err := uc.partnerRepo.List(partnerType, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPartnerList(partners, limit, offset), nil
}

// DeletePartner remove um parceiro sem documentos vinculados.
func (uc *PartnerUseCase) DeletePartner(ctx context.Context, id string) error {
	partner, err := uc.partnerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if partner == nil {
		return domain.ErrNotFound
	}
	return uc.partnerRepo.Delete(id)
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Document:  p.Document,
		Type:      p.Type,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

func toPartnerList(partners []*entity.Partner, limit, offset int) *dto.PartnerListResponse {
	out := &dto.PartnerListResponse{
		Partners: make([]dto.PartnerResponse, 0, len(partners)),
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range partners {
		out.Partners = append(out.Partners, *toPartnerResponse(p))
	}
	return out
}
