package jsonfile

import (
	"context"

	"github.com/medix-saude/gestao-vendas/internal/application/ledger"
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
	"github.com/medix-saude/gestao-vendas/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks com tudo-ou-nada sobre os documentos JSON:
// as duas coleções são carregadas, o callback mexe só nas cópias em memória e
// a persistência acontece apenas se ele terminar sem erro. Um erro no meio do
// callback não deixa nenhuma escrita parcial no disco.
type TxRunner struct {
	store *Store
}

// NewTxRunner constrói o runner sobre o store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run carrega as coleções, executa fn com repositórios presos à sessão e
// grava products.json e sales.json somente no sucesso.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	productList, err := r.store.loadProducts()
	if err != nil {
		return err
	}
	saleList, err := r.store.loadSales()
	if err != nil {
		return err
	}
	sess := &session{products: productList, sales: saleList}

	if err := fn(&txProductRepo{sess: sess}, &txSaleRepo{sess: sess}); err != nil {
		return err
	}

	if sess.productsDirty {
		if err := r.store.saveProducts(sess.products); err != nil {
			return err
		}
	}
	if sess.salesDirty {
		if err := r.store.saveSales(sess.sales); err != nil {
			return err
		}
	}
	return nil
}

// session estado em memória de uma "transação" sobre os arquivos.
type session struct {
	products      []*entity.Product
	sales         []*entity.Sale
	productsDirty bool
	salesDirty    bool
}

type txProductRepo struct {
	sess *session
}

func (r *txProductRepo) Create(product *entity.Product) error {
	list, err := createProduct(r.sess.products, product)
	if err != nil {
		return err
	}
	r.sess.products = list
	r.sess.productsDirty = true
	return nil
}

func (r *txProductRepo) GetByID(id int) (*entity.Product, error) {
	return productByID(r.sess.products, id), nil
}

func (r *txProductRepo) GetByName(name string) (*entity.Product, error) {
	return productByName(r.sess.products, name), nil
}

func (r *txProductRepo) Update(product *entity.Product) error {
	list, err := updateProduct(r.sess.products, product)
	if err != nil {
		return err
	}
	r.sess.products = list
	r.sess.productsDirty = true
	return nil
}

func (r *txProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, len(r.sess.products))
	copy(out, r.sess.products)
	sortProducts(out)
	return out, nil
}

func (r *txProductRepo) MaxID() (int, error) {
	return maxProductID(r.sess.products), nil
}

func (r *txProductRepo) Delete(id int) error {
	r.sess.products = deleteProduct(r.sess.products, id)
	r.sess.productsDirty = true
	return nil
}

type txSaleRepo struct {
	sess *session
}

func (r *txSaleRepo) Create(sale *entity.Sale) error {
	list, err := createSale(r.sess.sales, sale)
	if err != nil {
		return err
	}
	r.sess.sales = list
	r.sess.salesDirty = true
	return nil
}

func (r *txSaleRepo) GetByID(id int) (*entity.Sale, error) {
	return saleByID(r.sess.sales, id), nil
}

func (r *txSaleRepo) Update(sale *entity.Sale) error {
	list, err := updateSale(r.sess.sales, sale)
	if err != nil {
		return err
	}
	r.sess.sales = list
	r.sess.salesDirty = true
	return nil
}

func (r *txSaleRepo) List() ([]*entity.Sale, error) {
	out := make([]*entity.Sale, len(r.sess.sales))
	copy(out, r.sess.sales)
	return out, nil
}

func (r *txSaleRepo) ListWithProduct() ([]*entity.SaleWithProduct, error) {
	return joinSalesWithProducts(r.sess.sales, r.sess.products), nil
}

func (r *txSaleRepo) CountByProduct(productID int) (int, error) {
	return countSalesByProduct(r.sess.sales, productID), nil
}

func (r *txSaleRepo) MaxID() (int, error) {
	return maxSaleID(r.sess.sales), nil
}

func (r *txSaleRepo) Delete(id int) error {
	r.sess.sales = deleteSale(r.sess.sales, id)
	r.sess.salesDirty = true
	return nil
}
