package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest dados do cadastro de produto.
// StockQuantity só é considerado para tipos com controle de estoque (Card, Físico).
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity *int            `json:"stock_quantity,omitempty"`
	DownloadLink  string          `json:"download_link,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// UpdateProductRequest substitui todos os campos mutáveis do produto (o id não muda).
type UpdateProductRequest struct {
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity *int            `json:"stock_quantity,omitempty"`
	DownloadLink  string          `json:"download_link,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// ProductResponse representação de produto nas respostas.
type ProductResponse struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity *int            `json:"stock_quantity,omitempty"`
	DownloadLink  string          `json:"download_link,omitempty"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductListResponse listagem de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
