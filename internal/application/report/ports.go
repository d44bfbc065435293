package report

import (
	"github.com/medix-saude/gestao-vendas/internal/application/dto"
)

// SalesPDFGenerator renderiza o relatório de vendas em PDF.
// A implementação concreta (Maroto) fica na infraestrutura.
type SalesPDFGenerator interface {
	GenerateSalesPDF(items []dto.SaleListItem) ([]byte, error)
}
