package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medix-saude/gestao-vendas/internal/application/auth"
	"github.com/medix-saude/gestao-vendas/internal/application/ledger"
	"github.com/medix-saude/gestao-vendas/internal/application/report"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	ProductUC *ledger.ProductUseCase
	SaleUC    *ledger.SaleUseCase
	ReportUC  *report.ReportUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Produtos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Register)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Vendas
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Register)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	// Exports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/products.csv", reportHandler.ProductsCSV)
	reports.Get("/sales.csv", reportHandler.SalesCSV)
	reports.Get("/sales.pdf", reportHandler.SalesPDF)
}
