package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/medix-saude/gestao-vendas/internal/application/ledger"
	"github.com/medix-saude/gestao-vendas/internal/domain"
)

// ReportUseCase exporta produtos e vendas em formato tabular. Consome as
// listagens do ledger (linhas completas e tipadas); a fidelidade dos dados é
// responsabilidade do ledger, não daqui.
type ReportUseCase struct {
	products *ledger.ProductUseCase
	sales    *ledger.SaleUseCase
	pdf      SalesPDFGenerator
}

// NewReportUseCase constrói o caso de uso.
func NewReportUseCase(products *ledger.ProductUseCase, sales *ledger.SaleUseCase, pdf SalesPDFGenerator) *ReportUseCase {
	return &ReportUseCase{products: products, sales: sales, pdf: pdf}
}

// ProductsCSV exporta o catálogo. O CSV sai em Windows-1252 com separador
// ponto-e-vírgula, que é o que o Excel pt-BR abre sem assistente de importação.
func (uc *ReportUseCase) ProductsCSV() ([]byte, error) {
	out, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"id", "nome", "tipo", "valor", "quantidade", "link_download", "descricao"}}
	for _, p := range out.Items {
		stock := ""
		if p.StockQuantity != nil {
			stock = fmt.Sprintf("%d", *p.StockQuantity)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			p.Kind,
			p.UnitPrice.StringFixed(2),
			stock,
			p.DownloadLink,
			p.Description,
		})
	}
	return writeCSVWindows1252(rows)
}

// SalesCSV exporta as vendas com os campos do produto resolvidos, da mais
// recente para a mais antiga.
func (uc *ReportUseCase) SalesCSV() ([]byte, error) {
	out, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	rows := [][]string{{
		"id", "produto_id", "produto", "tipo", "cliente", "cpf_cliente", "email_cliente",
		"quantidade", "valor_total", "forma_pagamento", "data_registro", "data_compra", "status",
	}}
	for _, s := range out.Items {
		product := s.ProductName
		if s.ProductMissing {
			product = "(produto removido)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID),
			fmt.Sprintf("%d", s.ProductID),
			product,
			s.ProductKind,
			s.CustomerName,
			s.CustomerCPF,
			s.CustomerEmail,
			fmt.Sprintf("%d", s.Quantity),
			s.TotalAmount.StringFixed(2),
			s.PaymentMethod,
			s.RecordedAt.Format("2006-01-02 15:04:05"),
			s.PurchaseDate,
			s.Status,
		})
	}
	return writeCSVWindows1252(rows)
}

// SalesPDF gera o relatório de vendas em PDF.
func (uc *ReportUseCase) SalesPDF() ([]byte, error) {
	out, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSalesPDF(out.Items)
}

// FileName monta o nome do arquivo exportado com o carimbo de hora, no padrão
// dos exports antigos (MEDIX_vendas_20240131_154500.csv).
func FileName(kind, ext string) string {
	return fmt.Sprintf("MEDIX_%s_%s.%s", kind, time.Now().Format("20060102_150405"), ext)
}

// writeCSVWindows1252 serializa as linhas e reencoda o resultado de UTF-8
// para Windows-1252 (acentos legíveis no Excel sem configurar encoding).
// Caracteres fora do charset viram o substituto padrão em vez de abortar o export.
func writeCSVWindows1252(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	enc := transform.NewWriter(&buf, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
	w := csv.NewWriter(enc)
	w.Comma = ';'
	if err := w.WriteAll(rows); err != nil {
		return nil, domain.WrapStorage("gerar CSV", err)
	}
	if err := enc.Close(); err != nil {
		return nil, domain.WrapStorage("reencodar CSV", err)
	}
	return buf.Bytes(), nil
}
