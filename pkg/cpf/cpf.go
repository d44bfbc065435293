// Package cpf valida e formata o CPF (Cadastro de Pessoas Físicas) com os
// dois dígitos verificadores calculados por módulo 11.
package cpf

import (
	"strings"
	"unicode"
)

// allZero é o sentinela "sem CPF informado": é aceito como válido e o
// Format o devolve sem pontuação, por compatibilidade com as planilhas antigas.
const allZero = "00000000000"

// IsValid verifica o CPF informado (com ou sem pontuação).
// Entrada vazia é válida: o campo é opcional no cadastro de venda.
func IsValid(raw string) bool {
	if raw == "" || raw == allZero {
		return true
	}
	digits := extractDigits(raw)
	if len(digits) != 11 {
		return false
	}
	if allSame(digits) {
		return false
	}
	d1 := checkDigit(digits[:9], 10)
	d2 := checkDigit(digits[:10], 11)
	return digits[9] == d1 && digits[10] == d2
}

// Format remove tudo que não for dígito e devolve o CPF como ###.###.###-##.
// O sentinela todo-zero e entradas vazias voltam sem alteração; como a
// pontuação é removida antes de formatar, Format é idempotente.
func Format(raw string) string {
	if raw == "" || raw == allZero {
		return raw
	}
	digits := extractDigits(raw)
	if len(digits) != 11 {
		return string(digits)
	}
	var b strings.Builder
	b.Grow(14)
	b.Write(digits[:3])
	b.WriteByte('.')
	b.Write(digits[3:6])
	b.WriteByte('.')
	b.Write(digits[6:9])
	b.WriteByte('-')
	b.Write(digits[9:])
	return b.String()
}

// checkDigit calcula um dígito verificador sobre os bytes dados, com pesos
// decrescentes a partir de firstWeight (10 para o primeiro dígito, 11 para o segundo).
func checkDigit(digits []byte, firstWeight int) byte {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * (firstWeight - i)
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func allSame(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
