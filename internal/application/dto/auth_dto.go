package dto

// LoginRequest credenciais do operador.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sessão emitido no login.
type LoginResponse struct {
	Token string `json:"token"`
}
