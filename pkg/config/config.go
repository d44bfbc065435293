package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e
// opcionalmente arquivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	JWT     JWTConfig
	Auth    AuthConfig
	Ledger  LedgerConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig escolha do backend de persistência.
// Substitui a cascata de try/except das revisões antigas por uma decisão
// explícita de configuração.
type StorageConfig struct {
	Backend     string // "postgres" ou "jsonfile"
	JSONFileDir string // diretório dos documentos do backend de arquivos
}

// Backends de persistência suportados.
const (
	BackendPostgres = "postgres"
	BackendJSONFile = "jsonfile"
)

// DBConfig configuração do PostgreSQL. Se DatabaseURL não estiver vazio, ele
// é usado como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devolve o DSN a usar: DATABASE_URL se definido, senão o montado com DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN monta o connection string do PostgreSQL com URL encoding para
// caracteres especiais na senha.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração do token de sessão do operador.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig credenciais do operador único. A senha fica como hash bcrypt na
// configuração; a aplicação nunca guarda a senha em claro.
type AuthConfig struct {
	OperatorEmail        string
	OperatorPasswordHash string
}

// LedgerConfig políticas de negócio que variam entre implantações.
type LedgerConfig struct {
	StrictCPF bool // rejeita venda com CPF inválido em vez de só avisar
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de
// arquivo .env/config.env). As env vars têm prioridade.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // arquivo é opcional

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "medix-vendas"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Backend:     getString(v, "STORAGE_BACKEND", BackendJSONFile),
			JSONFileDir: getString(v, "JSONFILE_DIR", "./data"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "medix_vendas"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "medix-vendas"),
		},
		Auth: AuthConfig{
			OperatorEmail:        getString(v, "OPERATOR_EMAIL", ""),
			OperatorPasswordHash: getString(v, "OPERATOR_PASSWORD_HASH", ""),
		},
		Ledger: LedgerConfig{
			StrictCPF: getBool(v, "LEDGER_STRICT_CPF", false),
		},
	}

	if cfg.Storage.Backend != BackendPostgres && cfg.Storage.Backend != BackendJSONFile {
		return nil, fmt.Errorf("STORAGE_BACKEND inválido: %q (use %q ou %q)",
			cfg.Storage.Backend, BackendPostgres, BackendJSONFile)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
