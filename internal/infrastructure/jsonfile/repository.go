package jsonfile

import (
	"sort"
	"strings"

	"github.com/medix-saude/gestao-vendas/internal/domain"
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
	"github.com/medix-saude/gestao-vendas/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.SaleRepository    = (*SaleRepo)(nil)
)

// ProductRepo implementação do porto ProductRepository sobre o documento
// products.json. Cada chamada lê o documento do disco; mutações fora do
// TxRunner persistem imediatamente.
type ProductRepo struct {
	store *Store
}

// NewProductRepository constrói o adaptador de persistência para produtos.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	return r.mutate(func(list []*entity.Product) ([]*entity.Product, error) {
		return createProduct(list, product)
	})
}

func (r *ProductRepo) GetByID(id int) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadProducts()
	if err != nil {
		return nil, err
	}
	return productByID(list, id), nil
}

func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadProducts()
	if err != nil {
		return nil, err
	}
	return productByName(list, name), nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	return r.mutate(func(list []*entity.Product) ([]*entity.Product, error) {
		return updateProduct(list, product)
	})
}

func (r *ProductRepo) List() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadProducts()
	if err != nil {
		return nil, err
	}
	sortProducts(list)
	return list, nil
}

func (r *ProductRepo) MaxID() (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadProducts()
	if err != nil {
		return 0, err
	}
	return maxProductID(list), nil
}

func (r *ProductRepo) Delete(id int) error {
	return r.mutate(func(list []*entity.Product) ([]*entity.Product, error) {
		return deleteProduct(list, id), nil
	})
}

func (r *ProductRepo) mutate(fn func([]*entity.Product) ([]*entity.Product, error)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadProducts()
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	return r.store.saveProducts(list)
}

// SaleRepo implementação do porto SaleRepository sobre o documento sales.json.
type SaleRepo struct {
	store *Store
}

// NewSaleRepository constrói o adaptador de persistência para vendas.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{store: store}
}

func (r *SaleRepo) Create(sale *entity.Sale) error {
	return r.mutate(func(list []*entity.Sale) ([]*entity.Sale, error) {
		return createSale(list, sale)
	})
}

func (r *SaleRepo) GetByID(id int) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadSales()
	if err != nil {
		return nil, err
	}
	return saleByID(list, id), nil
}

func (r *SaleRepo) Update(sale *entity.Sale) error {
	return r.mutate(func(list []*entity.Sale) ([]*entity.Sale, error) {
		return updateSale(list, sale)
	})
}

func (r *SaleRepo) List() ([]*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.loadSales()
}

func (r *SaleRepo) ListWithProduct() ([]*entity.SaleWithProduct, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sales, err := r.store.loadSales()
	if err != nil {
		return nil, err
	}
	products, err := r.store.loadProducts()
	if err != nil {
		return nil, err
	}
	return joinSalesWithProducts(sales, products), nil
}

func (r *SaleRepo) CountByProduct(productID int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadSales()
	if err != nil {
		return 0, err
	}
	return countSalesByProduct(list, productID), nil
}

func (r *SaleRepo) MaxID() (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadSales()
	if err != nil {
		return 0, err
	}
	return maxSaleID(list), nil
}

func (r *SaleRepo) Delete(id int) error {
	return r.mutate(func(list []*entity.Sale) ([]*entity.Sale, error) {
		return deleteSale(list, id), nil
	})
}

func (r *SaleRepo) mutate(fn func([]*entity.Sale) ([]*entity.Sale, error)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list, err := r.store.loadSales()
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	return r.store.saveSales(list)
}

// ── operações sobre as coleções em memória ────────────────────────────────────
// Compartilhadas entre os repositórios diretos e os de transação.

func productByID(list []*entity.Product, id int) *entity.Product {
	for _, p := range list {
		if p.ID == id {
			cp := *p
			return &cp
		}
	}
	return nil
}

func productByName(list []*entity.Product, name string) *entity.Product {
	for _, p := range list {
		if strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp
		}
	}
	return nil
}

func createProduct(list []*entity.Product, product *entity.Product) ([]*entity.Product, error) {
	if productByID(list, product.ID) != nil {
		return nil, domain.WrapStorage("inserir produto", domain.ErrInvalidInput)
	}
	cp := *product
	return append(list, &cp), nil
}

func updateProduct(list []*entity.Product, product *entity.Product) ([]*entity.Product, error) {
	for i, p := range list {
		if p.ID == product.ID {
			cp := *product
			list[i] = &cp
			return list, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func deleteProduct(list []*entity.Product, id int) []*entity.Product {
	out := list[:0]
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func maxProductID(list []*entity.Product) int {
	max := 0
	for _, p := range list {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

func sortProducts(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

func saleByID(list []*entity.Sale, id int) *entity.Sale {
	for _, s := range list {
		if s.ID == id {
			cp := *s
			return &cp
		}
	}
	return nil
}

func createSale(list []*entity.Sale, sale *entity.Sale) ([]*entity.Sale, error) {
	if saleByID(list, sale.ID) != nil {
		return nil, domain.WrapStorage("inserir venda", domain.ErrInvalidInput)
	}
	cp := *sale
	return append(list, &cp), nil
}

func updateSale(list []*entity.Sale, sale *entity.Sale) ([]*entity.Sale, error) {
	for i, s := range list {
		if s.ID == sale.ID {
			cp := *sale
			list[i] = &cp
			return list, nil
		}
	}
	return nil, domain.ErrSaleNotFound
}

func deleteSale(list []*entity.Sale, id int) []*entity.Sale {
	out := list[:0]
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

func countSalesByProduct(list []*entity.Sale, productID int) int {
	n := 0
	for _, s := range list {
		if s.ProductID == productID {
			n++
		}
	}
	return n
}

func maxSaleID(list []*entity.Sale) int {
	max := 0
	for _, s := range list {
		if s.ID > max {
			max = s.ID
		}
	}
	return max
}

func joinSalesWithProducts(sales []*entity.Sale, products []*entity.Product) []*entity.SaleWithProduct {
	byID := make(map[int]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]*entity.SaleWithProduct, 0, len(sales))
	for _, s := range sales {
		row := &entity.SaleWithProduct{Sale: *s}
		if p, ok := byID[s.ProductID]; ok {
			row.ProductName = p.Name
			row.ProductKind = p.Kind
		} else {
			row.ProductMissing = true
		}
		out = append(out, row)
	}
	// Da mais recente para a mais antiga; empate decide pelo id.
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out
}
