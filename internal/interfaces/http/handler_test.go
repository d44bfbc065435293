package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medix-saude/gestao-vendas/internal/application/auth"
	"github.com/medix-saude/gestao-vendas/internal/application/dto"
	"github.com/medix-saude/gestao-vendas/internal/application/ledger"
	"github.com/medix-saude/gestao-vendas/internal/application/report"
	"github.com/medix-saude/gestao-vendas/internal/infrastructure/jsonfile"
	"github.com/medix-saude/gestao-vendas/internal/infrastructure/pdf"
	apphttp "github.com/medix-saude/gestao-vendas/internal/interfaces/http"
)

const testPassword = "senha-do-operador"

// buildAPI monta a aplicação completa sobre o backend de arquivos em um
// diretório temporário, igual ao main com STORAGE_BACKEND=jsonfile.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()

	store, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err)
	products := jsonfile.NewProductRepository(store)
	sales := jsonfile.NewSaleRepository(store)
	tx := jsonfile.NewTxRunner(store)

	productUC := ledger.NewProductUseCase(tx, products, sales)
	saleUC := ledger.NewSaleUseCase(tx, products, sales, ledger.Config{})
	reportUC := report.NewReportUseCase(productUC, saleUC, pdf.NewMarotoSalesReport())

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	authUC := auth.NewAuthUseCase(testOperator, string(hash), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: productUC,
		SaleUC:    saleUC,
		ReportUC:  reportUC,
		AuthUC:    authUC,
		JWTSecret: testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    testOperator,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "o login deve funcionar")
	return decodeBody[dto.LoginResponse](t, resp).Token
}

func createTestProduct(t *testing.T, app *fiber.App, token, name string, stock int) dto.ProductResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products", token, fiber.Map{
		"name": name, "kind": "Físico", "unit_price": "10.00", "stock_quantity": stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.ProductResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Login_SenhaErrada_Retorna401(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    testOperator,
		Password: "senha errada",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_RotasProtegidasExigemToken(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Produtos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Produto_CicloCompleto(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)

	created := createTestProduct(t, app, token, "Kit A", 5)
	assert.Equal(t, 1, created.ID)

	// Duplicado ignorando caixa → 409.
	resp := doJSON(t, app, http.MethodPost, "/api/products", token, fiber.Map{
		"name": "kit a", "kind": "Físico", "unit_price": "10.00", "stock_quantity": 5,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_NAME", errBody.Code)

	// Edição.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), token, fiber.Map{
		"name": "Kit A Premium", "kind": "Físico", "unit_price": "25.00", "stock_quantity": 8,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[dto.ProductResponse](t, resp)
	assert.Equal(t, "Kit A Premium", updated.Name)

	// Listagem.
	resp = doJSON(t, app, http.MethodGet, "/api/products", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[dto.ProductListResponse](t, resp)
	assert.Equal(t, 1, list.Total)

	// Remoção.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Produto_EntradaInvalida_Retorna400(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/products", token, fiber.Map{
		"name": "X", "kind": "Assinatura", "unit_price": "10.00",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vendas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Venda_RegistroEListagem(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	p := createTestProduct(t, app, token, "Kit A", 5)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", token, fiber.Map{
		"product_id": p.ID, "customer_name": "Maria Souza",
		"customer_cpf": "52998224725", "quantity": 3, "payment_method": "Pix",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decodeBody[dto.SaleResponse](t, resp)
	assert.Equal(t, "529.982.247-25", sale.CustomerCPF)
	assert.Empty(t, sale.Warning)

	// Estoque insuficiente → 409 com a quantidade disponível na mensagem.
	resp = doJSON(t, app, http.MethodPost, "/api/sales", token, fiber.Map{
		"product_id": p.ID, "customer_name": "João", "quantity": 3, "payment_method": "Pix",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "OUT_OF_STOCK", errBody.Code)
	assert.Contains(t, errBody.Message, "Disponível: 2")

	resp = doJSON(t, app, http.MethodGet, "/api/sales", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[dto.SaleListResponse](t, resp)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Kit A", list.Items[0].ProductName)
}

func TestAPI_Venda_CPFInvalidoGeraAviso(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	p := createTestProduct(t, app, token, "Kit A", 5)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", token, fiber.Map{
		"product_id": p.ID, "customer_name": "Maria",
		"customer_cpf": "52998224724", "quantity": 1, "payment_method": "Pix",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "na política padrão a venda passa")
	sale := decodeBody[dto.SaleResponse](t, resp)
	assert.Equal(t, ledger.WarningInvalidCPF, sale.Warning)
}

func TestAPI_ProdutoComVendas_RemocaoRetorna409(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	p := createTestProduct(t, app, token, "Kit A", 5)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", token, fiber.Map{
		"product_id": p.ID, "customer_name": "Maria", "quantity": 1, "payment_method": "Pix",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "HAS_DEPENDENT_SALES", errBody.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exports
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Exports_DevolvemAnexos(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	p := createTestProduct(t, app, token, "Kit Fisioterapia", 5)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", token, fiber.Map{
		"product_id": p.ID, "customer_name": "Maria", "quantity": 1, "payment_method": "Pix",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	for _, path := range []string{
		"/api/reports/products.csv",
		"/api/reports/sales.csv",
		"/api/reports/sales.pdf",
	} {
		t.Run(path, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodGet, path, token, nil)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
			assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "MEDIX_")
		})
	}
}
