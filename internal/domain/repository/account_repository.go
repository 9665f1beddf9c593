package repository

import "github.com/gestaolivre/erp-api/internal/domain/entity"

// AccountRepository define a porta de persistência para o plano de contas.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByCode(code string) (*entity.Account, error)
	Update(account *entity.Account) error
	List(limit, offset int) ([]*entity.Account, error)
	Delete(id string) error
}
