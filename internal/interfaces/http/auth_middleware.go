package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/medix-saude/gestao-vendas/internal/application/dto"
	"github.com/medix-saude/gestao-vendas/pkg/jwt"
)

// LocalOperatorEmail chave do e-mail do operador em c.Locals.
const LocalOperatorEmail = "operator_email"

// AuthMiddleware valida o Bearer Token JWT e coloca o e-mail do operador em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		operatorEmail, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalOperatorEmail, operatorEmail)
		return c.Next()
	}
}

// GetOperatorEmail devolve o e-mail do operador do contexto (após o middleware).
func GetOperatorEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalOperatorEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
