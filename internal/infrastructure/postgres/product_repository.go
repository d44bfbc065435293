package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/medix-saude/gestao-vendas/internal/domain"
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
	"github.com/medix-saude/gestao-vendas/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação do porto ProductRepository sobre PostgreSQL
// (usável com pool ou tx via Querier).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de persistência para produtos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, kind, unit_price, stock_quantity, download_link, description, created_at`

func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, kind, unit_price, stock_quantity, download_link, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Kind, product.UnitPrice,
		product.StockQuantity, product.DownloadLink, product.Description, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return domain.WrapStorage("inserir produto", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "buscar produto")
}

func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lower(name) = lower($1)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "buscar produto por nome")
}

func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, kind = $3, unit_price = $4, stock_quantity = $5, download_link = $6, description = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Kind, product.UnitPrice,
		product.StockQuantity, product.DownloadLink, product.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return domain.WrapStorage("atualizar produto", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, domain.WrapStorage("listar produtos", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.UnitPrice,
			&p.StockQuantity, &p.DownloadLink, &p.Description, &p.CreatedAt); err != nil {
			return nil, domain.WrapStorage("ler produto", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapStorage("listar produtos", err)
	}
	return list, nil
}

func (r *ProductRepo) MaxID() (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(), `SELECT COALESCE(MAX(id), 0) FROM products`).Scan(&max)
	if err != nil {
		return 0, domain.WrapStorage("maior id de produto", err)
	}
	return max, nil
}

func (r *ProductRepo) Delete(id int) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return domain.WrapStorage("remover produto", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Kind, &p.UnitPrice,
		&p.StockQuantity, &p.DownloadLink, &p.Description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapStorage(op, err)
	}
	return &p, nil
}
