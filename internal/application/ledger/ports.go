package ledger

import (
	"context"

	"github.com/medix-saude/gestao-vendas/internal/domain/repository"
)

// TxRunner executa o callback com repositórios atados a uma transação do
// backend ativo e faz Commit ou Rollback. Toda operação que toca venda e
// estoque ao mesmo tempo passa por aqui: ou as duas escritas entram, ou nenhuma.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error) error
}

// Config políticas do ledger que variam entre implantações.
type Config struct {
	// StrictCPF rejeita vendas com CPF inválido (ErrInvalidCPF) em vez do
	// comportamento padrão de registrar com aviso.
	StrictCPF bool
}
