// Package pdf renderiza o relatório de vendas em PDF (Maroto v2).
//
// Layout A4 paisagem:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: MEDIX — Relatório de Vendas  │  Gerado em <data>    │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABELA: Nº | Produto | Cliente | Qtd | Total | Pagto | Data │
//	│  ──────────────────────────────────────────────────────────  │
//	│  RODAPÉ: total de vendas e valor acumulado                   │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/medix-saude/gestao-vendas/internal/application/dto"
	"github.com/medix-saude/gestao-vendas/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 131, Blue: 184}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.SalesPDFGenerator = (*MarotoSalesReport)(nil)

// MarotoSalesReport implementa report.SalesPDFGenerator usando Maroto v2.
type MarotoSalesReport struct{}

// NewMarotoSalesReport constrói o gerador.
func NewMarotoSalesReport() *MarotoSalesReport { return &MarotoSalesReport{} }

// GenerateSalesPDF gera o relatório e devolve os bytes do PDF.
func (g *MarotoSalesReport) GenerateSalesPDF(items []dto.SaleListItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("MEDIX — Relatório de Vendas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, item := range items {
		m.AddRows(saleRow(item))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("MEDIX — Relatório de Vendas", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Nº", 1, align.Center),
		h("Produto", 3, align.Left),
		h("Cliente", 3, align.Left),
		h("Qtd.", 1, align.Center),
		h("Total", 1, align.Right),
		h("Pagamento", 2, align.Left),
		h("Data da compra", 1, align.Right),
	)
}

func saleRow(item dto.SaleListItem) core.Row {
	product := item.ProductName
	if item.ProductMissing {
		product = "(produto removido)"
	}
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(fmt.Sprintf("%d", item.ID), 1, align.Center),
		cell(product, 3, align.Left),
		cell(item.CustomerName, 3, align.Left),
		cell(fmt.Sprintf("%d", item.Quantity), 1, align.Center),
		cell("R$ "+item.TotalAmount.StringFixed(2), 1, align.Right),
		cell(item.PaymentMethod, 2, align.Left),
		cell(item.PurchaseDate, 1, align.Right),
	)
}

func totalsRow(items []dto.SaleListItem) core.Row {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalAmount)
	}
	return row.New(10).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("%d venda(s)", len(items)), props.Text{
				Size: 9, Color: colorGray, Top: 3,
			}),
		),
		col.New(4).Add(
			text.New("Total acumulado: R$ "+total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
			}),
		),
	)
}
