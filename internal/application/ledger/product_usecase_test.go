package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medix-saude/gestao-vendas/internal/application/dto"
	"github.com/medix-saude/gestao-vendas/internal/application/ledger"
	"github.com/medix-saude/gestao-vendas/internal/domain"
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
	"github.com/medix-saude/gestao-vendas/internal/infrastructure/jsonfile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste — os casos de uso rodam sobre o backend de arquivos real,
// em um diretório temporário por teste.
// ──────────────────────────────────────────────────────────────────────────────

func newLedger(t *testing.T, cfg ledger.Config) (*ledger.ProductUseCase, *ledger.SaleUseCase) {
	t.Helper()
	store, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err, "o armazenamento em arquivo deve abrir em diretório vazio")
	products := jsonfile.NewProductRepository(store)
	sales := jsonfile.NewSaleRepository(store)
	tx := jsonfile.NewTxRunner(store)
	return ledger.NewProductUseCase(tx, products, sales),
		ledger.NewSaleUseCase(tx, products, sales, cfg)
}

func intPtr(n int) *int { return &n }

func price(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func registerProduct(t *testing.T, uc *ledger.ProductUseCase, name, kind, unitPrice string, stock *int) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), dto.CreateProductRequest{
		Name:          name,
		Kind:          kind,
		UnitPrice:     price(t, unitPrice),
		StockQuantity: stock,
	})
	require.NoError(t, err, "o cadastro de %q deve funcionar", name)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Cadastro
// ──────────────────────────────────────────────────────────────────────────────

func TestProduto_Cadastro_AtribuiIdsSequenciais(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})

	a := registerProduct(t, productUC, "Apostila PDF", entity.KindPDF, "49.90", nil)
	b := registerProduct(t, productUC, "Kit Fisioterapia", entity.KindPhysical, "120.00", intPtr(10))
	c := registerProduct(t, productUC, "Card de Acesso", entity.KindCard, "15.00", intPtr(50))

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 3, c.ID)
}

func TestProduto_Cadastro_NomeDuplicadoIgnoraCaixa(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})
	registerProduct(t, productUC, "Kit A", entity.KindPhysical, "10.00", intPtr(5))

	_, err := productUC.Register(context.Background(), dto.CreateProductRequest{
		Name:          "kit a",
		Kind:          entity.KindPhysical,
		UnitPrice:     price(t, "10.00"),
		StockQuantity: intPtr(5),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateName,
		"nomes que diferem só em maiúsculas contam como duplicados")
}

func TestProduto_Cadastro_TipoSemEstoqueDescartaQuantidade(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})

	out := registerProduct(t, productUC, "E-book", entity.KindPDF, "29.90", intPtr(99))
	assert.Nil(t, out.StockQuantity,
		"tipos sem controle de estoque não guardam quantidade, mesmo se informada")
}

func TestProduto_Cadastro_EntradaInvalida(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"nome vazio", dto.CreateProductRequest{Name: "  ", Kind: entity.KindPDF, UnitPrice: price(t, "10")}},
		{"tipo desconhecido", dto.CreateProductRequest{Name: "X", Kind: "Assinatura", UnitPrice: price(t, "10")}},
		{"preço negativo", dto.CreateProductRequest{Name: "X", Kind: entity.KindPDF, UnitPrice: price(t, "-1")}},
		{"estoque negativo", dto.CreateProductRequest{Name: "X", Kind: entity.KindPhysical, UnitPrice: price(t, "10"), StockQuantity: intPtr(-3)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := productUC.Register(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Edição
// ──────────────────────────────────────────────────────────────────────────────

func TestProduto_Edicao_SubstituiCamposPreservandoId(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})
	created := registerProduct(t, productUC, "Kit A", entity.KindPhysical, "10.00", intPtr(5))

	updated, err := productUC.Edit(context.Background(), created.ID, dto.UpdateProductRequest{
		Name:          "Kit A Premium",
		Kind:          entity.KindPhysical,
		UnitPrice:     price(t, "25.00"),
		StockQuantity: intPtr(8),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID, "o id não muda na edição")
	assert.Equal(t, "Kit A Premium", updated.Name)
	assert.True(t, updated.UnitPrice.Equal(price(t, "25.00")))
	require.NotNil(t, updated.StockQuantity)
	assert.Equal(t, 8, *updated.StockQuantity)
}

func TestProduto_Edicao_MantemProprioNome(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})
	created := registerProduct(t, productUC, "Kit A", entity.KindPhysical, "10.00", intPtr(5))

	// Reenviar o mesmo nome (em outra caixa) não é duplicidade consigo mesmo.
	_, err := productUC.Edit(context.Background(), created.ID, dto.UpdateProductRequest{
		Name:          "KIT A",
		Kind:          entity.KindPhysical,
		UnitPrice:     price(t, "10.00"),
		StockQuantity: intPtr(5),
	})
	assert.NoError(t, err)
}

func TestProduto_Edicao_NomeDeOutroProduto(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})
	registerProduct(t, productUC, "Kit A", entity.KindPhysical, "10.00", intPtr(5))
	b := registerProduct(t, productUC, "Kit B", entity.KindPhysical, "12.00", intPtr(5))

	_, err := productUC.Edit(context.Background(), b.ID, dto.UpdateProductRequest{
		Name:          "kit a",
		Kind:          entity.KindPhysical,
		UnitPrice:     price(t, "12.00"),
		StockQuantity: intPtr(5),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestProduto_Edicao_NaoEncontrado(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})

	_, err := productUC.Edit(context.Background(), 42, dto.UpdateProductRequest{
		Name:      "X",
		Kind:      entity.KindPDF,
		UnitPrice: price(t, "10"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remoção e reaproveitamento de ids
// ──────────────────────────────────────────────────────────────────────────────

func TestProduto_Remocao_LiberaIdParaReuso(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})
	registerProduct(t, productUC, "A", entity.KindPDF, "10", nil)
	registerProduct(t, productUC, "B", entity.KindPDF, "10", nil)
	c := registerProduct(t, productUC, "C", entity.KindPDF, "10", nil)

	require.NoError(t, productUC.Remove(context.Background(), c.ID))

	// O maior id vivo é 2, então o próximo cadastro volta a receber 3.
	d := registerProduct(t, productUC, "D", entity.KindPDF, "10", nil)
	assert.Equal(t, 3, d.ID)
}

func TestProduto_Remocao_BloqueadaComVendas(t *testing.T) {
	productUC, saleUC := newLedger(t, ledger.Config{})
	p := registerProduct(t, productUC, "Kit A", entity.KindPhysical, "10.00", intPtr(5))

	_, err := saleUC.Register(context.Background(), dto.RegisterSaleRequest{
		ProductID:     p.ID,
		CustomerName:  "Maria Souza",
		Quantity:      1,
		PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)

	err = productUC.Remove(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependentSales,
		"produto com vendas registradas não pode ser removido")

	// O produto segue no catálogo.
	_, err = productUC.GetByID(p.ID)
	assert.NoError(t, err)
}

func TestProduto_Remocao_NaoEncontrado(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})
	err := productUC.Remove(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listagem
// ──────────────────────────────────────────────────────────────────────────────

func TestProduto_Listagem_OrdenadaPorIdEIdempotente(t *testing.T) {
	productUC, _ := newLedger(t, ledger.Config{})
	registerProduct(t, productUC, "B", entity.KindPDF, "10", nil)
	registerProduct(t, productUC, "A", entity.KindPDF, "10", nil)

	first, err := productUC.List()
	require.NoError(t, err)
	second, err := productUC.List()
	require.NoError(t, err)

	assert.Equal(t, first, second, "listar não altera o estado")
	require.Len(t, first.Items, 2)
	assert.Equal(t, 1, first.Items[0].ID)
	assert.Equal(t, 2, first.Items[1].ID)
	assert.Equal(t, 2, first.Total)
}
