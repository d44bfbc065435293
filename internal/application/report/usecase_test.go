package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/medix-saude/gestao-vendas/internal/application/dto"
	"github.com/medix-saude/gestao-vendas/internal/application/ledger"
	"github.com/medix-saude/gestao-vendas/internal/application/report"
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
	"github.com/medix-saude/gestao-vendas/internal/infrastructure/jsonfile"
	"github.com/medix-saude/gestao-vendas/internal/infrastructure/pdf"
)

func newReport(t *testing.T) (*ledger.ProductUseCase, *ledger.SaleUseCase, *report.ReportUseCase) {
	t.Helper()
	store, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err)
	products := jsonfile.NewProductRepository(store)
	sales := jsonfile.NewSaleRepository(store)
	tx := jsonfile.NewTxRunner(store)

	productUC := ledger.NewProductUseCase(tx, products, sales)
	saleUC := ledger.NewSaleUseCase(tx, products, sales, ledger.Config{})
	return productUC, saleUC, report.NewReportUseCase(productUC, saleUC, pdf.NewMarotoSalesReport())
}

func seedSale(t *testing.T, productUC *ledger.ProductUseCase, saleUC *ledger.SaleUseCase) {
	t.Helper()
	stock := 5
	p, err := productUC.Register(context.Background(), dto.CreateProductRequest{
		Name:          "Kit Fisioterapia Domiciliar",
		Kind:          entity.KindPhysical,
		UnitPrice:     decimal.RequireFromString("120.00"),
		StockQuantity: &stock,
		Description:   "Atenção: uso sob orientação",
	})
	require.NoError(t, err)
	_, err = saleUC.Register(context.Background(), dto.RegisterSaleRequest{
		ProductID:     p.ID,
		CustomerName:  "José da Conceição",
		Quantity:      2,
		PaymentMethod: entity.PaymentBankTransfer,
		PurchaseDate:  "2026-02-10",
	})
	require.NoError(t, err)
}

func TestReport_ProductsCSV_Windows1252ComPontoEVirgula(t *testing.T) {
	productUC, saleUC, reportUC := newReport(t)
	seedSale(t, productUC, saleUC)

	data, err := reportUC.ProductsCSV()
	require.NoError(t, err)

	// O arquivo sai em Windows-1252: os acentos são bytes de 1 octeto, não UTF-8.
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	require.NoError(t, err)
	text := string(decoded)

	assert.True(t, strings.HasPrefix(text, "id;nome;tipo;valor;quantidade"),
		"o cabeçalho usa ponto-e-vírgula")
	assert.Contains(t, text, "Kit Fisioterapia Domiciliar")
	assert.Contains(t, text, "Atenção: uso sob orientação")
	assert.NotContains(t, string(data), "Atenção", "os bytes crus não podem estar em UTF-8")
}

func TestReport_SalesCSV_ColunasDoProdutoResolvidas(t *testing.T) {
	productUC, saleUC, reportUC := newReport(t)
	seedSale(t, productUC, saleUC)

	data, err := reportUC.SalesCSV()
	require.NoError(t, err)
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	require.NoError(t, err)
	text := string(decoded)

	assert.Contains(t, text, "José da Conceição")
	assert.Contains(t, text, "Kit Fisioterapia Domiciliar")
	assert.Contains(t, text, "240.00", "o valor total congelado aparece no export")
	assert.Contains(t, text, "2026-02-10")
}

func TestReport_SalesPDF_GeraDocumento(t *testing.T) {
	productUC, saleUC, reportUC := newReport(t)
	seedSale(t, productUC, saleUC)

	data, err := reportUC.SalesPDF()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "o arquivo deve começar com o magic do PDF")
}

func TestReport_FileName_CarimboDeHora(t *testing.T) {
	name := report.FileName("vendas", "csv")
	assert.True(t, strings.HasPrefix(name, "MEDIX_vendas_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
