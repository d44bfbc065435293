package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/medix-saude/gestao-vendas/internal/domain"
	"github.com/medix-saude/gestao-vendas/pkg/jwt"
)

// JWTConfig parâmetros do token de sessão.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autentica o operador único da aplicação. As credenciais vêm da
// configuração (e-mail + hash bcrypt); não há cadastro de usuários — o ledger
// é uma ferramenta de um operador por vez.
type AuthUseCase struct {
	operatorEmail string
	passwordHash  string
	jwtCfg        JWTConfig
}

// NewAuthUseCase constrói o caso de uso.
func NewAuthUseCase(operatorEmail, passwordHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		operatorEmail: operatorEmail,
		passwordHash:  passwordHash,
		jwtCfg:        jwtCfg,
	}
}

// Login valida as credenciais e emite o token JWT do operador.
func (uc *AuthUseCase) Login(email, password string) (string, error) {
	if uc.operatorEmail == "" || uc.passwordHash == "" {
		return "", domain.ErrUnauthorized
	}
	if !strings.EqualFold(email, uc.operatorEmail) {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.passwordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return jwt.Generate(uc.jwtCfg.Secret, uc.operatorEmail, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}
