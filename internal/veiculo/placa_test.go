package veiculo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizarPlaca(t *testing.T) {
	testes := []struct {
		nome     string
		entrada  string
		esperado string
	}{
		{"minusculas", "abc1234", "ABC1234"},
		{"com hifen", "ABC-1234", "ABC1234"},
		{"com espacos", " abc 1d23 ", "ABC1D23"},
		{"ja normalizada", "ABC1D23", "ABC1D23"},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.esperado, NormalizarPlaca(tt.entrada))
		})
	}
}

func TestNormalizarPlacaIdempotente(t *testing.T) {
	uma := NormalizarPlaca("abc-1234")
	assert.Equal(t, uma, NormalizarPlaca(uma))
}

func TestPlacaValida(t *testing.T) {
	testes := []struct {
		nome   string
		placa  string
		valida bool
	}{
		{"padrao antigo", "ABC1234", true},
		{"padrao antigo com hifen", "abc-1234", true},
		{"padrao mercosul", "ABC1D23", true},
		{"padrao mercosul minusculas", "abc1d23", true},
		{"curta demais", "AB1234", false},
		{"letras demais", "ABCD123", false},
		{"mercosul invertido", "ABC1DD3", false},
		{"vazia", "", false},
		{"so digitos", "1234567", false},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.valida, PlacaValida(tt.placa))
		})
	}
}
