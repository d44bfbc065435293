package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterSaleRequest dados do registro de venda.
// CustomerCPF é opcional; PurchaseDate (2006-01-02) vazia vira a data de hoje.
type RegisterSaleRequest struct {
	ProductID     int    `json:"product_id"`
	CustomerName  string `json:"customer_name"`
	CustomerCPF   string `json:"customer_cpf,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
	PurchaseDate  string `json:"purchase_date,omitempty"`
}

// UpdateSaleRequest substitui os campos mutáveis da venda; id, data de registro
// e status são preservados do registro original.
type UpdateSaleRequest struct {
	ProductID     int    `json:"product_id"`
	CustomerName  string `json:"customer_name"`
	CustomerCPF   string `json:"customer_cpf,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
	PurchaseDate  string `json:"purchase_date"`
}

// SaleResponse representação de venda nas respostas.
// Warning é preenchido quando a venda foi aceita com CPF suspeito.
type SaleResponse struct {
	ID            int             `json:"id"`
	ProductID     int             `json:"product_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerCPF   string          `json:"customer_cpf,omitempty"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	Quantity      int             `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	RecordedAt    time.Time       `json:"recorded_at"`
	PurchaseDate  string          `json:"purchase_date"`
	Status        string          `json:"status"`
	Warning       string          `json:"warning,omitempty"`
}

// SaleListItem linha da listagem de vendas com os campos do produto resolvidos.
// ProductMissing=true marca vendas cujo produto não existe mais; a linha é
// mantida na listagem em vez de ser descartada em silêncio.
type SaleListItem struct {
	SaleResponse
	ProductName    string `json:"product_name,omitempty"`
	ProductKind    string `json:"product_kind,omitempty"`
	ProductMissing bool   `json:"product_missing,omitempty"`
}

// SaleListResponse listagem de vendas.
type SaleListResponse struct {
	Items []SaleListItem `json:"items"`
	Total int            `json:"total"`
}
