package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medix-saude/gestao-vendas/internal/application/dto"
	"github.com/medix-saude/gestao-vendas/internal/domain"
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
	"github.com/medix-saude/gestao-vendas/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para produtos, com as regras do ledger:
// nome único (sem diferenciar maiúsculas), id sequencial max+1 e estoque
// apenas para tipos que o controlam.
type ProductUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	sales    repository.SaleRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(txRunner TxRunner, products repository.ProductRepository, sales repository.SaleRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, products: products, sales: sales}
}

// Register cadastra um produto novo. O id é max(ids existentes)+1, 1 quando o
// catálogo está vazio; ids liberados por remoções podem ser reaproveitados.
func (uc *ProductUseCase) Register(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in.Name, in.Kind, in.UnitPrice, in.StockQuantity); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	var created *entity.Product
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.SaleRepository) error {
		existing, err := products.GetByName(name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateName
		}
		maxID, err := products.MaxID()
		if err != nil {
			return err
		}
		created = &entity.Product{
			ID:            maxID + 1,
			Name:          name,
			Kind:          in.Kind,
			UnitPrice:     in.UnitPrice,
			StockQuantity: stockForKind(in.Kind, in.StockQuantity),
			DownloadLink:  in.DownloadLink,
			Description:   in.Description,
			CreatedAt:     time.Now(),
		}
		return products.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(created), nil
}

// Edit substitui todos os campos mutáveis do produto; o id não muda.
func (uc *ProductUseCase) Edit(ctx context.Context, id int, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in.Name, in.Kind, in.UnitPrice, in.StockQuantity); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.SaleRepository) error {
		product, err := products.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		other, err := products.GetByName(name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return domain.ErrDuplicateName
		}
		product.Name = name
		product.Kind = in.Kind
		product.UnitPrice = in.UnitPrice
		product.StockQuantity = stockForKind(in.Kind, in.StockQuantity)
		product.DownloadLink = in.DownloadLink
		product.Description = in.Description
		updated = product
		return products.Update(product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Remove apaga o produto. Produtos com vendas registradas não podem ser
// removidos (ErrHasDependentSales): é a única regra que mantém as referências
// venda→produto sempre resolvíveis.
func (uc *ProductUseCase) Remove(ctx context.Context, id int) error {
	return uc.txRunner.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		product, err := products.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		n, err := sales.CountByProduct(id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasDependentSales
		}
		return products.Delete(id)
	})
}

// GetByID obtém um produto por id.
func (uc *ProductUseCase) GetByID(id int) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// List lista o catálogo completo em ordem de id.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	list, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

func validateProductInput(name, kind string, price decimal.Decimal, stock *int) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidKind(kind) {
		return domain.ErrInvalidInput
	}
	if price.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if stock != nil && *stock < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// stockForKind devolve a quantidade a armazenar: o valor informado para tipos
// com estoque, nil para os demais, seja o que for que o chamador mandou.
func stockForKind(kind string, stock *int) *int {
	if !entity.StockTracked(kind) {
		return nil
	}
	if stock == nil {
		return nil
	}
	q := *stock
	return &q
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Kind:          p.Kind,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		DownloadLink:  p.DownloadLink,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
	}
}
