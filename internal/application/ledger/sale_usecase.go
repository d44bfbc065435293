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
	"github.com/medix-saude/gestao-vendas/pkg/cpf"
)

// WarningInvalidCPF aviso não fatal devolvido quando a política padrão aceita
// a venda mesmo com CPF reprovado na verificação.
const WarningInvalidCPF = "CPF inválido. A venda foi registrada, mas verifique o CPF."

// SaleUseCase casos de uso do ciclo de vida de venda. Cada operação que mexe
// em venda e estoque roda dentro de uma transação do backend: a soma das
// quantidades vendidas mais o estoque atual nunca deriva do último ajuste manual.
type SaleUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	sales    repository.SaleRepository
	cfg      Config
}

// NewSaleUseCase constrói o caso de uso.
func NewSaleUseCase(txRunner TxRunner, products repository.ProductRepository, sales repository.SaleRepository, cfg Config) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, products: products, sales: sales, cfg: cfg}
}

// Register registra uma venda: valida o CPF conforme a política, confere o
// estoque do produto, congela o total (preço unitário × quantidade) e grava
// venda e baixa de estoque juntas.
func (uc *SaleUseCase) Register(ctx context.Context, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleInput(in.ProductID, in.CustomerName, in.Quantity, in.PaymentMethod); err != nil {
		return nil, err
	}
	formattedCPF, warning, err := uc.applyCPFPolicy(in.CustomerCPF)
	if err != nil {
		return nil, err
	}
	purchaseDate, err := parsePurchaseDate(in.PurchaseDate, true)
	if err != nil {
		return nil, err
	}

	var created *entity.Sale
	err = uc.txRunner.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		product, err := products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.IsStockTracked() {
			if product.StockQuantity == nil || in.Quantity > *product.StockQuantity {
				return &domain.OutOfStockError{Available: product.AvailableStock()}
			}
		}
		maxID, err := sales.MaxID()
		if err != nil {
			return err
		}
		created = &entity.Sale{
			ID:            maxID + 1,
			ProductID:     product.ID,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerCPF:   formattedCPF,
			CustomerEmail: in.CustomerEmail,
			Quantity:      in.Quantity,
			TotalAmount:   product.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
			PaymentMethod: in.PaymentMethod,
			RecordedAt:    time.Now(),
			PurchaseDate:  purchaseDate,
			Status:        entity.StatusProcessing,
		}
		if err := sales.Create(created); err != nil {
			return err
		}
		if product.IsStockTracked() {
			remaining := *product.StockQuantity - in.Quantity
			product.StockQuantity = &remaining
			return products.Update(product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toSaleResponse(created)
	resp.Warning = warning
	return resp, nil
}

// Edit substitui os campos mutáveis da venda e reconcilia o estoque.
// Mesmo produto: estoque_novo = estoque + quantidade_antiga − quantidade_nova.
// Produto diferente: primeiro confirma que o produto novo tem estoque e só
// então devolve a quantidade antiga ao produto anterior — uma falha no meio
// não deixa o produto antigo creditado indevidamente.
// Id, data de registro e status são preservados do registro original.
func (uc *SaleUseCase) Edit(ctx context.Context, id int, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleInput(in.ProductID, in.CustomerName, in.Quantity, in.PaymentMethod); err != nil {
		return nil, err
	}
	formattedCPF, warning, err := uc.applyCPFPolicy(in.CustomerCPF)
	if err != nil {
		return nil, err
	}
	purchaseDate, err := parsePurchaseDate(in.PurchaseDate, false)
	if err != nil {
		return nil, err
	}

	var updated *entity.Sale
	err = uc.txRunner.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		sale, err := sales.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		product, err := products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		if product.ID == sale.ProductID {
			if product.IsStockTracked() {
				available := product.AvailableStock()
				adjusted := available + sale.Quantity - in.Quantity
				if adjusted < 0 {
					return &domain.OutOfStockError{Available: available}
				}
				product.StockQuantity = &adjusted
				if err := products.Update(product); err != nil {
					return err
				}
			}
		} else {
			if product.IsStockTracked() {
				if product.StockQuantity == nil || in.Quantity > *product.StockQuantity {
					return &domain.OutOfStockError{Available: product.AvailableStock()}
				}
			}
			// Devolve a quantidade ao produto anterior só depois da checagem acima.
			previous, err := products.GetByID(sale.ProductID)
			if err != nil {
				return err
			}
			if previous != nil && previous.IsStockTracked() {
				restored := previous.AvailableStock() + sale.Quantity
				previous.StockQuantity = &restored
				if err := products.Update(previous); err != nil {
					return err
				}
			}
			if product.IsStockTracked() {
				remaining := *product.StockQuantity - in.Quantity
				product.StockQuantity = &remaining
				if err := products.Update(product); err != nil {
					return err
				}
			}
		}

		sale.ProductID = product.ID
		sale.CustomerName = strings.TrimSpace(in.CustomerName)
		sale.CustomerCPF = formattedCPF
		sale.CustomerEmail = in.CustomerEmail
		sale.Quantity = in.Quantity
		sale.TotalAmount = product.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		sale.PaymentMethod = in.PaymentMethod
		sale.PurchaseDate = purchaseDate
		updated = sale
		return sales.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	resp := toSaleResponse(updated)
	resp.Warning = warning
	return resp, nil
}

// Remove apaga a venda devolvendo a quantidade ao estoque do produto, quando
// ele controla estoque. As duas escritas entram na mesma transação.
func (uc *SaleUseCase) Remove(ctx context.Context, id int) error {
	return uc.txRunner.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		sale, err := sales.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		product, err := products.GetByID(sale.ProductID)
		if err != nil {
			return err
		}
		if product != nil && product.IsStockTracked() {
			restored := product.AvailableStock() + sale.Quantity
			product.StockQuantity = &restored
			if err := products.Update(product); err != nil {
				return err
			}
		}
		return sales.Delete(id)
	})
}

// GetByID obtém uma venda por id.
func (uc *SaleUseCase) GetByID(id int) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return toSaleResponse(sale), nil
}

// List lista as vendas com nome e tipo do produto resolvidos, da mais recente
// para a mais antiga. Vendas cujo produto sumiu vêm marcadas, não descartadas.
func (uc *SaleUseCase) List() (*dto.SaleListResponse, error) {
	list, err := uc.sales.ListWithProduct()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleListItem, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SaleListItem{
			SaleResponse:   *toSaleResponse(&s.Sale),
			ProductName:    s.ProductName,
			ProductKind:    s.ProductKind,
			ProductMissing: s.ProductMissing,
		})
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}, nil
}

// applyCPFPolicy valida e formata o CPF. Política padrão: CPF reprovado não
// impede a venda, só gera aviso; com StrictCPF a operação falha (ErrInvalidCPF).
func (uc *SaleUseCase) applyCPFPolicy(raw string) (formatted, warning string, err error) {
	if raw == "" {
		return "", "", nil
	}
	if !cpf.IsValid(raw) {
		if uc.cfg.StrictCPF {
			return "", "", domain.ErrInvalidCPF
		}
		warning = WarningInvalidCPF
	}
	return cpf.Format(raw), warning, nil
}

func validateSaleInput(productID int, customerName string, quantity int, paymentMethod string) error {
	if productID <= 0 {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(customerName) == "" {
		return domain.ErrInvalidInput
	}
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return domain.ErrInvalidInput
	}
	return nil
}

// parsePurchaseDate interpreta a data da compra (2006-01-02). No registro a
// data vazia vira hoje; na edição ela é obrigatória.
func parsePurchaseDate(raw string, allowEmpty bool) (time.Time, error) {
	if raw == "" {
		if allowEmpty {
			now := time.Now()
			return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
		}
		return time.Time{}, domain.ErrInvalidInput
	}
	d, err := time.ParseInLocation(dto.DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return d, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		CustomerName:  s.CustomerName,
		CustomerCPF:   s.CustomerCPF,
		CustomerEmail: s.CustomerEmail,
		Quantity:      s.Quantity,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		RecordedAt:    s.RecordedAt,
		PurchaseDate:  s.PurchaseDate.Format(dto.DateLayout),
		Status:        s.Status,
	}
}
