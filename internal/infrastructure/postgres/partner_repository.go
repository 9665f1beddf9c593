package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
	pkgfiscal "github.com/gestaolivre/erp-api/pkg/fiscal"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

const partnerColumns = "id, name, document, type, email, phone, address, active, created_at, updated_at"

// PartnerRepo implementação de PartnerRepository sobre PostgreSQL (usável com pool ou tx).
// A coluna name_normalized guarda o nome sem acentos em caixa baixa para busca.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository constrói o adaptador de parceiros. Passar pool ou tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// Create persiste um parceiro. Documento duplicado devolve ErrDuplicate.
func (r *PartnerRepo) Create(partner *entity.Partner) error {
	query := `
		INSERT INTO partners (id, name, name_normalized, document, type, email, phone, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		partner.ID, partner.Name, pkgfiscal.NormalizeName(partner.Name), partner.Document,
		partner.Type, partner.Email, partner.Phone, partner.Address,
		partner.Active, partner.CreatedAt, partner.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// GetByID obtém um parceiro por ID.
func (r *PartnerRepo) GetByID(id string) (*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1`
	return r.scanOne(query, id, "get partner")
}

// GetByDocument obtém um parceiro pelo CPF/CNPJ.
func (r *PartnerRepo) GetByDocument(document string) (*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE document = $1`
	return r.scanOne(query, document, "get partner by document")
}

// Update atualiza um parceiro. Document é imutável; name_normalized acompanha o nome.
func (r *PartnerRepo) Update(partner *entity.Partner) error {
	query := `
		UPDATE partners SET name = $2, name_normalized = $3, type = $4, email = $5, phone = $6, address = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		partner.ID, partner.Name, pkgfiscal.NormalizeName(partner.Name), partner.Type,
		partner.Email, partner.Phone, partner.Address, partner.Active, partner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	return nil
}

// SearchByName busca por substring do nome normalizado.
func (r *PartnerRepo) SearchByName(normalizedName string, limit, offset int) ([]*entity.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners WHERE name_normalized LIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, normalizedName, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search partners: %w", err)
	}
	defer rows.Close()
	return scanPartners(rows)
}

// List lista parceiros, com filtro opcional por tipo.
func (r *PartnerRepo) List(partnerType string, limit, offset int) ([]*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners`
	args := []any{}
	pos := 1
	if partnerType != "" {
		query += fmt.Sprintf(" WHERE type = $%d", pos)
		args = append(args, partnerType)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	return scanPartners(rows)
}

// Delete remove um parceiro. Parceiro com documentos vinculados devolve ErrConflict (FK).
func (r *PartnerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete partner: %w", err)
	}
	return nil
}

func (r *PartnerRepo) scanOne(query, arg, op string) (*entity.Partner, error) {
	var p entity.Partner
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.Document, &p.Type, &p.Email, &p.Phone, &p.Address,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanPartners(rows pgx.Rows) ([]*entity.Partner, error) {
	var list []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Document, &p.Type, &p.Email, &p.Phone,
			&p.Address, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
