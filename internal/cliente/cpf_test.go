package cliente

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizarCPF(t *testing.T) {
	testes := []struct {
		nome     string
		entrada  string
		esperado string
	}{
		{"com pontuacao", "529.982.247-25", "52998224725"},
		{"so digitos", "52998224725", "52998224725"},
		{"com espacos", " 529 982 247 25 ", "52998224725"},
		{"vazio", "", ""},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.esperado, NormalizarCPF(tt.entrada))
		})
	}
}

func TestCPFValido(t *testing.T) {
	testes := []struct {
		nome   string
		cpf    string
		valido bool
	}{
		{"valido com pontuacao", "529.982.247-25", true},
		{"valido so digitos", "52998224725", true},
		{"valido segundo exemplo", "111.444.777-35", true},
		{"primeiro digito errado", "529.982.247-15", false},
		{"segundo digito errado", "529.982.247-24", false},
		{"todos os digitos iguais", "111.111.111-11", false},
		{"curto demais", "5299822472", false},
		{"longo demais", "529982247255", false},
		{"vazio", "", false},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.valido, CPFValido(tt.cpf))
		})
	}
}
