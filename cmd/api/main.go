package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/medix-saude/gestao-vendas/internal/application/auth"
	"github.com/medix-saude/gestao-vendas/internal/application/ledger"
	"github.com/medix-saude/gestao-vendas/internal/application/report"
	"github.com/medix-saude/gestao-vendas/internal/domain/repository"
	"github.com/medix-saude/gestao-vendas/internal/infrastructure/jsonfile"
	infrapdf "github.com/medix-saude/gestao-vendas/internal/infrastructure/pdf"
	"github.com/medix-saude/gestao-vendas/internal/infrastructure/postgres"
	httpRouter "github.com/medix-saude/gestao-vendas/internal/interfaces/http"
	"github.com/medix-saude/gestao-vendas/pkg/config"
	"github.com/medix-saude/gestao-vendas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicação")

	ctx := context.Background()

	var (
		productRepo repository.ProductRepository
		saleRepo    repository.SaleRepository
		txRunner    ledger.TxRunner
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
		}
		defer pool.Close()
		productRepo = postgres.NewProductRepository(pool)
		saleRepo = postgres.NewSaleRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	case config.BackendJSONFile:
		store, err := jsonfile.NewStore(cfg.Storage.JSONFileDir)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir armazenamento em arquivo")
		}
		productRepo = jsonfile.NewProductRepository(store)
		saleRepo = jsonfile.NewSaleRepository(store)
		txRunner = jsonfile.NewTxRunner(store)
	}

	productUC := ledger.NewProductUseCase(txRunner, productRepo, saleRepo)
	saleUC := ledger.NewSaleUseCase(txRunner, productRepo, saleRepo, ledger.Config{
		StrictCPF: cfg.Ledger.StrictCPF,
	})
	reportUC := report.NewReportUseCase(productUC, saleUC, infrapdf.NewMarotoSalesReport())
	authUC := auth.NewAuthUseCase(cfg.Auth.OperatorEmail, cfg.Auth.OperatorPasswordHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MEDIX Gestão de Vendas",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		SaleUC:    saleUC,
		ReportUC:  reportUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
