package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas). Violações de regra de negócio
// voltam como valores tipados; panics ficam reservados para falhas de infraestrutura.
var (
	ErrProductNotFound   = errors.New("produto não encontrado")
	ErrSaleNotFound      = errors.New("venda não encontrada")
	ErrDuplicateName     = errors.New("já existe um produto com este nome")
	ErrInvalidCPF        = errors.New("CPF inválido")
	ErrHasDependentSales = errors.New("produto possui vendas registradas")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("credenciais inválidas")
)

// OutOfStockError indica estoque insuficiente e carrega a quantidade disponível,
// para que a camada de apresentação mostre "Disponível: N" como no sistema original.
type OutOfStockError struct {
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente. Disponível: %d", e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre o erro estruturado.
func (e *OutOfStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// StorageError envolve qualquer falha do adaptador de persistência.
// Para o chamador é uma condição possivelmente transitória; o ledger não tenta de novo.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("erro de armazenamento em %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapStorage envolve err em StorageError, preservando erros de domínio já tipados.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
