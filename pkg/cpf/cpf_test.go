package cpf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medix-saude/gestao-vendas/pkg/cpf"
)

// Fixtures conhecidas: 52998224725 passa nos dois dígitos verificadores;
// trocar o último dígito invalida o CPF.
const (
	cpfValido   = "52998224725"
	cpfInvalido = "52998224724"
)

func TestIsValid_CPFConhecido(t *testing.T) {
	assert.True(t, cpf.IsValid(cpfValido), "CPF com dígitos verificadores corretos deve ser válido")
	assert.False(t, cpf.IsValid(cpfInvalido), "alterar o último dígito deve invalidar o CPF")
}

func TestIsValid_AceitaPontuacao(t *testing.T) {
	assert.True(t, cpf.IsValid("529.982.247-25"), "a pontuação deve ser ignorada na validação")
	assert.False(t, cpf.IsValid("529.982.247-24"))
}

func TestIsValid_VazioEhValido(t *testing.T) {
	// O campo é opcional: ausência de CPF não é erro.
	assert.True(t, cpf.IsValid(""))
}

func TestIsValid_SentinelaTodoZero(t *testing.T) {
	// "00000000000" é a convenção das planilhas para "sem CPF" e deve passar,
	// mesmo sendo uma sequência de dígitos iguais.
	assert.True(t, cpf.IsValid("00000000000"))
}

func TestIsValid_DigitosIguaisInvalido(t *testing.T) {
	for _, s := range []string{"11111111111", "22222222222", "99999999999"} {
		assert.False(t, cpf.IsValid(s), "sequência de dígitos iguais deve ser inválida: %s", s)
	}
}

func TestIsValid_TamanhoErrado(t *testing.T) {
	assert.False(t, cpf.IsValid("5299822472"), "10 dígitos não formam um CPF")
	assert.False(t, cpf.IsValid("529982247255"), "12 dígitos não formam um CPF")
	assert.False(t, cpf.IsValid("abc"), "entrada sem 11 dígitos deve ser inválida")
}

func TestFormat_CPFLimpo(t *testing.T) {
	assert.Equal(t, "529.982.247-25", cpf.Format(cpfValido))
}

func TestFormat_Idempotente(t *testing.T) {
	// Format remove a pontuação antes de formatar, então aplicar duas vezes
	// não duplica pontos e traço.
	uma := cpf.Format(cpfValido)
	duas := cpf.Format(uma)
	assert.Equal(t, uma, duas, "formatar um CPF já formatado não deve alterá-lo")
}

func TestFormat_SentinelaSemFormatacao(t *testing.T) {
	assert.Equal(t, "00000000000", cpf.Format("00000000000"),
		"o sentinela todo-zero volta sem pontuação")
	assert.Equal(t, "", cpf.Format(""))
}
