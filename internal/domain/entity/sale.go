package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pagamento aceitas no registro de venda.
const (
	PaymentPix          = "Pix"
	PaymentCreditCard   = "Cartão de Crédito"
	PaymentDebitCard    = "Cartão de Débito"
	PaymentBankTransfer = "Transferência Bancária"
	PaymentCash         = "Dinheiro"
)

// ValidPaymentMethod informa se a forma de pagamento é conhecida.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentCash:
		return true
	}
	return false
}

// StatusProcessing é o status inicial de toda venda; não há máquina de estados
// além deste campo.
const StatusProcessing = "Processando"

// Sale registra uma venda contra um produto do catálogo.
// TotalAmount é o preço unitário na hora da venda multiplicado pela quantidade:
// mudanças de preço posteriores não alteram vendas já registradas.
// RecordedAt e Status são definidos na criação e preservados em edições.
type Sale struct {
	ID            int
	ProductID     int
	CustomerName  string
	CustomerCPF   string // armazenado formatado (###.###.###-##); vazio quando não informado
	CustomerEmail string
	Quantity      int
	TotalAmount   decimal.Decimal
	PaymentMethod string
	RecordedAt    time.Time
	PurchaseDate  time.Time // só a data importa
	Status        string
}

// SaleWithProduct é a linha desnormalizada do listar-vendas: a venda mais o
// nome e tipo do produto resolvidos na leitura. Quando o produto referenciado
// não existe mais (dados importados de backends permissivos), a linha é mantida
// com ProductMissing=true em vez de sumir da listagem.
type SaleWithProduct struct {
	Sale
	ProductName    string
	ProductKind    string
	ProductMissing bool
}
