package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse corpo de confirmação simples (remoções e edições).
// Warning carrega avisos não fatais, como CPF que não passou na verificação.
type StatusResponse struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

// DateLayout formato de datas de negócio (data da compra) nas bordas da API.
const DateLayout = "2006-01-02"
