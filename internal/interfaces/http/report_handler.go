package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medix-saude/gestao-vendas/internal/application/report"
)

// ReportHandler exporta produtos e vendas como arquivo (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ProductsCSV godoc
// @Summary      Exportar catálogo em CSV (Windows-1252, separador ;)
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/products.csv [get]
func (h *ReportHandler) ProductsCSV(c *fiber.Ctx) error {
	data, err := h.uc.ProductsCSV()
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, "text/csv; charset=windows-1252", report.FileName("produtos", "csv"))
}

// SalesCSV godoc
// @Summary      Exportar vendas em CSV (Windows-1252, separador ;)
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/sales.csv [get]
func (h *ReportHandler) SalesCSV(c *fiber.Ctx) error {
	data, err := h.uc.SalesCSV()
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, "text/csv; charset=windows-1252", report.FileName("vendas", "csv"))
}

// SalesPDF godoc
// @Summary      Exportar relatório de vendas em PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/sales.pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	data, err := h.uc.SalesPDF()
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, "application/pdf", report.FileName("vendas", "pdf"))
}

func sendFile(c *fiber.Ctx, data []byte, contentType, name string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}
