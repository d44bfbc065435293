package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medix-saude/gestao-vendas/internal/application/dto"
	"github.com/medix-saude/gestao-vendas/internal/domain"
)

// writeError traduz um erro de domínio para a resposta HTTP correspondente.
// Erros não mapeados viram 500 sem vazar detalhe interno no corpo.
func writeError(c *fiber.Ctx, err error) error {
	var outOfStock *domain.OutOfStockError
	if errors.As(err, &outOfStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OUT_OF_STOCK", Message: outOfStock.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: domain.ErrProductNotFound.Error()})
	case errors.Is(err, domain.ErrSaleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SALE_NOT_FOUND", Message: domain.ErrSaleNotFound.Error()})
	case errors.Is(err, domain.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: domain.ErrDuplicateName.Error()})
	case errors.Is(err, domain.ErrHasDependentSales):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_DEPENDENT_SALES", Message: domain.ErrHasDependentSales.Error()})
	case errors.Is(err, domain.ErrInvalidCPF):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_CPF", Message: domain.ErrInvalidCPF.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: domain.ErrInvalidInput.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: domain.ErrUnauthorized.Error()})
	}
	var storage *domain.StorageError
	if errors.As(err, &storage) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "falha de armazenamento, tente novamente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
}
