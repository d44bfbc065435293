// Package jsonfile implementa o backend de arquivos locais: cada coleção vive
// em um documento JSON (products.json, vendas em sales.json). A escrita é
// sempre arquivo-temporário + rename; o TxRunner do pacote aplica as mutações
// em memória e só persiste depois que o callback inteiro dá certo.
//
// O par de renames não é atômico entre si: uma queda entre os dois pode
// persistir só uma coleção. Limitação aceita para o modelo de um operador.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medix-saude/gestao-vendas/internal/domain"
	"github.com/medix-saude/gestao-vendas/internal/domain/entity"
)

const (
	productsFile = "products.json"
	salesFile    = "sales.json"
)

// Store acesso serializado aos dois documentos JSON do backend de arquivos.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore cria o diretório de dados (se preciso) e devolve o store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.WrapStorage("criar diretório de dados", err)
	}
	return &Store{dir: dir}, nil
}

// ── registros persistidos ─────────────────────────────────────────────────────
// Toda coerção de tipo (string→decimal, data→string, ausente→nil) acontece
// aqui, na borda do adaptador, nunca na lógica de negócio.

type productRecord struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity *int            `json:"stock_quantity,omitempty"`
	DownloadLink  string          `json:"download_link,omitempty"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type saleRecord struct {
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
}

const dateLayout = "2006-01-02"

func toProductRecord(p *entity.Product) productRecord {
	return productRecord{
		ID: p.ID, Name: p.Name, Kind: p.Kind, UnitPrice: p.UnitPrice,
		StockQuantity: p.StockQuantity, DownloadLink: p.DownloadLink,
		Description: p.Description, CreatedAt: p.CreatedAt,
	}
}

func fromProductRecord(r productRecord) *entity.Product {
	return &entity.Product{
		ID: r.ID, Name: r.Name, Kind: r.Kind, UnitPrice: r.UnitPrice,
		StockQuantity: r.StockQuantity, DownloadLink: r.DownloadLink,
		Description: r.Description, CreatedAt: r.CreatedAt,
	}
}

func toSaleRecord(s *entity.Sale) saleRecord {
	return saleRecord{
		ID: s.ID, ProductID: s.ProductID, CustomerName: s.CustomerName,
		CustomerCPF: s.CustomerCPF, CustomerEmail: s.CustomerEmail,
		Quantity: s.Quantity, TotalAmount: s.TotalAmount,
		PaymentMethod: s.PaymentMethod, RecordedAt: s.RecordedAt,
		PurchaseDate: s.PurchaseDate.Format(dateLayout), Status: s.Status,
	}
}

func fromSaleRecord(r saleRecord) (*entity.Sale, error) {
	purchase, err := time.ParseInLocation(dateLayout, r.PurchaseDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("data de compra inválida na venda %d: %w", r.ID, err)
	}
	return &entity.Sale{
		ID: r.ID, ProductID: r.ProductID, CustomerName: r.CustomerName,
		CustomerCPF: r.CustomerCPF, CustomerEmail: r.CustomerEmail,
		Quantity: r.Quantity, TotalAmount: r.TotalAmount,
		PaymentMethod: r.PaymentMethod, RecordedAt: r.RecordedAt,
		PurchaseDate: purchase, Status: r.Status,
	}, nil
}

// ── leitura e escrita dos documentos ─────────────────────────────────────────

func (s *Store) loadProducts() ([]*entity.Product, error) {
	var records []productRecord
	if err := s.readDoc(productsFile, &records); err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(records))
	for _, r := range records {
		out = append(out, fromProductRecord(r))
	}
	return out, nil
}

func (s *Store) loadSales() ([]*entity.Sale, error) {
	var records []saleRecord
	if err := s.readDoc(salesFile, &records); err != nil {
		return nil, err
	}
	out := make([]*entity.Sale, 0, len(records))
	for _, r := range records {
		sale, err := fromSaleRecord(r)
		if err != nil {
			return nil, domain.WrapStorage("ler "+salesFile, err)
		}
		out = append(out, sale)
	}
	return out, nil
}

func (s *Store) saveProducts(list []*entity.Product) error {
	records := make([]productRecord, 0, len(list))
	for _, p := range list {
		records = append(records, toProductRecord(p))
	}
	return s.writeDoc(productsFile, records)
}

func (s *Store) saveSales(list []*entity.Sale) error {
	records := make([]saleRecord, 0, len(list))
	for _, sale := range list {
		records = append(records, toSaleRecord(sale))
	}
	return s.writeDoc(salesFile, records)
}

// readDoc decodifica um documento JSON; arquivo inexistente é coleção vazia.
func (s *Store) readDoc(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return domain.WrapStorage("ler "+name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.WrapStorage("decodificar "+name, err)
	}
	return nil
}

// writeDoc grava via arquivo temporário + rename, para nunca deixar um
// documento meio escrito no lugar do anterior.
func (s *Store) writeDoc(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return domain.WrapStorage("codificar "+name, err)
	}
	tmp := filepath.Join(s.dir, name+".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return domain.WrapStorage("gravar "+name, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp)
		return domain.WrapStorage("substituir "+name, err)
	}
	return nil
}
