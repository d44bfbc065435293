package repository

import (
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
)

// ProductRepository define o porto de persistência para Product (DIP).
// GetByID e GetByName devolvem (nil, nil) quando o registro não existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int) (*entity.Product, error)
	// GetByName busca por nome sem diferenciar maiúsculas de minúsculas.
	GetByName(name string) (*entity.Product, error)
	Update(product *entity.Product) error
	List() ([]*entity.Product, error)
	// MaxID devolve o maior id existente (0 quando a coleção está vazia).
	MaxID() (int, error)
	Delete(id int) error
}
