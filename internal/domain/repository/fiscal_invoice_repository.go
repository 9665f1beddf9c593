package repository

import "github.com/gestaolivre/erp-api/internal/domain/entity"

// FiscalInvoiceRepository define a porta de persistência para notas fiscais.
type FiscalInvoiceRepository interface {
	Create(invoice *entity.FiscalInvoice) error
	GetByID(id string) (*entity.FiscalInvoice, error)
	GetBySaleID(saleID string) (*entity.FiscalInvoice, error)
	Update(invoice *entity.FiscalInvoice) error
	// NextNumber devolve o próximo número sequencial da série (MAX+1 dentro da tx).
	NextNumber(series string) (int64, error)
	List(limit, offset int) ([]*entity.FiscalInvoice, error)
}
