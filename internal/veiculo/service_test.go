package veiculo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/locadora-bm/api-locadora/internal/erros"
)

func dadosValidos() DadosVeiculo {
	return DadosVeiculo{
		Modelo:        "Onix",
		Marca:         "Chevrolet",
		Ano:           2023,
		Cor:           "Prata",
		Placa:         "ABC1D23",
		Quilometragem: 15000,
		Categoria:     CategoriaEconomico,
		ValorDiaria:   decimal.NewFromInt(120),
	}
}

func TestValidarDados(t *testing.T) {
	testes := []struct {
		nome  string
		mudar func(*DadosVeiculo)
		campo string // vazio quando os dados devem passar
	}{
		{"dados completos", func(d *DadosVeiculo) {}, ""},
		{"sem modelo", func(d *DadosVeiculo) { d.Modelo = "" }, "modelo"},
		{"sem marca", func(d *DadosVeiculo) { d.Marca = "" }, "marca"},
		{"ano antigo demais", func(d *DadosVeiculo) { d.Ano = 1899 }, "ano"},
		{"ano futuro demais", func(d *DadosVeiculo) { d.Ano = time.Now().Year() + 2 }, "ano"},
		{"ano seguinte permitido", func(d *DadosVeiculo) { d.Ano = time.Now().Year() + 1 }, ""},
		{"placa invalida", func(d *DadosVeiculo) { d.Placa = "ZZ999" }, "placa"},
		{"quilometragem negativa", func(d *DadosVeiculo) { d.Quilometragem = -1 }, "quilometragem"},
		{"categoria desconhecida", func(d *DadosVeiculo) { d.Categoria = "Blindado" }, "categoria"},
		{"seguro sem nome", func(d *DadosVeiculo) { d.Seguro = &Seguro{} }, "seguro"},
		{"diaria negativa", func(d *DadosVeiculo) { d.ValorDiaria = decimal.NewFromInt(-1) }, "valorDiaria"},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			dados := dadosValidos()
			tt.mudar(&dados)

			err := validarDados(&dados)
			if tt.campo == "" {
				assert.NoError(t, err)
				return
			}
			var ev *erros.ErroValidacao
			assert.ErrorAs(t, err, &ev)
			assert.Equal(t, tt.campo, ev.Campo)
		})
	}
}

func TestCategoriaValida(t *testing.T) {
	assert.True(t, CategoriaValida(CategoriaSUV))
	assert.True(t, CategoriaValida(CategoriaExecutivo))
	assert.False(t, CategoriaValida("Luxo"))
	assert.False(t, CategoriaValida(""))
}
