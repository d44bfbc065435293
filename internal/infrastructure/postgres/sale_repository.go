package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medix-saude/gestao-vendas/internal/domain"
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
	"github.com/medix-saude/gestao-vendas/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação do porto SaleRepository sobre PostgreSQL
// (usável com pool ou tx via Querier).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de persistência para vendas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, product_id, customer_name, customer_cpf, customer_email, quantity, total_amount, payment_method, recorded_at, purchase_date, status`

func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, customer_name, customer_cpf, customer_email, quantity, total_amount, payment_method, recorded_at, purchase_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.CustomerName, sale.CustomerCPF, sale.CustomerEmail,
		sale.Quantity, sale.TotalAmount, sale.PaymentMethod, sale.RecordedAt, sale.PurchaseDate, sale.Status,
	)
	if err != nil {
		return domain.WrapStorage("inserir venda", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(id int) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ProductID, &s.CustomerName, &s.CustomerCPF, &s.CustomerEmail,
		&s.Quantity, &s.TotalAmount, &s.PaymentMethod, &s.RecordedAt, &s.PurchaseDate, &s.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapStorage("buscar venda", err)
	}
	return &s, nil
}

func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales
		SET product_id = $2, customer_name = $3, customer_cpf = $4, customer_email = $5,
		    quantity = $6, total_amount = $7, payment_method = $8, purchase_date = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.CustomerName, sale.CustomerCPF, sale.CustomerEmail,
		sale.Quantity, sale.TotalAmount, sale.PaymentMethod, sale.PurchaseDate,
	)
	if err != nil {
		return domain.WrapStorage("atualizar venda", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (r *SaleRepo) List() ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY recorded_at DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, domain.WrapStorage("listar vendas", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.CustomerName, &s.CustomerCPF, &s.CustomerEmail,
			&s.Quantity, &s.TotalAmount, &s.PaymentMethod, &s.RecordedAt, &s.PurchaseDate, &s.Status); err != nil {
			return nil, domain.WrapStorage("ler venda", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapStorage("listar vendas", err)
	}
	return list, nil
}

// ListWithProduct junta as vendas com nome e tipo do produto (LEFT JOIN):
// vendas órfãs aparecem com ProductMissing=true em vez de sumir do resultado.
func (r *SaleRepo) ListWithProduct() ([]*entity.SaleWithProduct, error) {
	query := `
		SELECT s.id, s.product_id, s.customer_name, s.customer_cpf, s.customer_email,
		       s.quantity, s.total_amount, s.payment_method, s.recorded_at, s.purchase_date, s.status,
		       p.name, p.kind
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		ORDER BY s.recorded_at DESC, s.id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, domain.WrapStorage("listar vendas com produto", err)
	}
	defer rows.Close()
	var list []*entity.SaleWithProduct
	for rows.Next() {
		var row entity.SaleWithProduct
		var name, kind *string
		if err := rows.Scan(&row.ID, &row.ProductID, &row.CustomerName, &row.CustomerCPF, &row.CustomerEmail,
			&row.Quantity, &row.TotalAmount, &row.PaymentMethod, &row.RecordedAt, &row.PurchaseDate, &row.Status,
			&name, &kind); err != nil {
			return nil, domain.WrapStorage("ler venda com produto", err)
		}
		if name == nil {
			row.ProductMissing = true
		} else {
			row.ProductName = *name
			row.ProductKind = *kind
		}
		list = append(list, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapStorage("listar vendas com produto", err)
	}
	return list, nil
}

func (r *SaleRepo) CountByProduct(productID int) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, domain.WrapStorage("contar vendas do produto", err)
	}
	return n, nil
}

func (r *SaleRepo) MaxID() (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(), `SELECT COALESCE(MAX(id), 0) FROM sales`).Scan(&max)
	if err != nil {
		return 0, domain.WrapStorage("maior id de venda", err)
	}
	return max, nil
}

func (r *SaleRepo) Delete(id int) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return domain.WrapStorage("remover venda", err)
	}
	return nil
}
