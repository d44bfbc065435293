package repository

import (
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
)

// SaleRepository define o porto de persistência para Sale (DIP).
// GetByID devolve (nil, nil) quando a venda não existe.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id int) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	List() ([]*entity.Sale, error)
	// ListWithProduct devolve as vendas com nome e tipo do produto resolvidos,
	// ordenadas por RecordedAt decrescente. Vendas sem produto correspondente
	// vêm com ProductMissing=true.
	ListWithProduct() ([]*entity.SaleWithProduct, error)
	// CountByProduct conta as vendas que referenciam o produto.
	CountByProduct(productID int) (int, error)
	// MaxID devolve o maior id existente (0 quando a coleção está vazia).
	MaxID() (int, error)
	Delete(id int) error
}
