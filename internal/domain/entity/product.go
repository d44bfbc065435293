package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de produto do catálogo. Card e Físico controlam estoque;
// PDF e Serviço Digital são entregues por link, sem quantidade.
const (
	KindPDF            = "PDF"
	KindCard           = "Card"
	KindPhysical       = "Físico"
	KindDigitalService = "Serviço Digital"
)

// ValidKind informa se o tipo pertence ao catálogo.
func ValidKind(kind string) bool {
	switch kind {
	case KindPDF, KindCard, KindPhysical, KindDigitalService:
		return true
	}
	return false
}

// StockTracked informa se o tipo de produto controla estoque.
func StockTracked(kind string) bool {
	return kind == KindCard || kind == KindPhysical
}

// Product representa um produto do catálogo de vendas.
// StockQuantity é nil para tipos sem controle de estoque, independente do que
// o chamador enviar no cadastro.
type Product struct {
	ID            int
	Name          string // único entre produtos, comparação sem diferenciar maiúsculas
	Kind          string
	UnitPrice     decimal.Decimal
	StockQuantity *int
	DownloadLink  string
	Description   string
	CreatedAt     time.Time
}

// IsStockTracked informa se este produto controla estoque.
func (p *Product) IsStockTracked() bool {
	return StockTracked(p.Kind)
}

// AvailableStock devolve a quantidade disponível (0 quando não há registro).
func (p *Product) AvailableStock() int {
	if p.StockQuantity == nil {
		return 0
	}
	return *p.StockQuantity
}
