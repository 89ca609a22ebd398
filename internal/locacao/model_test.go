package locacao

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dia(d int, hora int) time.Time {
	return time.Date(2025, 1, d, hora, 0, 0, 0, time.UTC)
}

func TestCalcularTotalDias(t *testing.T) {
	testes := []struct {
		nome      string
		retirada  time.Time
		devolucao time.Time
		esperado  int
	}{
		{"tres dias exatos", dia(1, 10), dia(4, 10), 3},
		{"dia iniciado conta inteiro", dia(1, 10), dia(2, 11), 2},
		{"duas horas valem uma diaria", dia(1, 10), dia(1, 12), 1},
		{"mesmo instante cobra uma diaria", dia(1, 10), dia(1, 10), 1},
		{"exatamente 24h vale uma diaria", dia(1, 10), dia(2, 10), 1},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.esperado, CalcularTotalDias(tt.retirada, tt.devolucao))
		})
	}
}

func TestCalcularKmExtra(t *testing.T) {
	l := &Locacao{
		OdometroRetirada:  10000,
		TotalDias:         3,
		KmPermitidoPorDia: 100,
	}

	testes := []struct {
		nome     string
		odometro int
		esperado int
	}{
		{"acima da franquia", 10350, 50},
		{"na franquia", 10300, 0},
		{"abaixo da franquia", 10150, 0},
		{"sem rodar", 10000, 0},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.esperado, l.CalcularKmExtra(tt.odometro))
		})
	}
}

func TestCalcularMultaAtraso(t *testing.T) {
	prevista := dia(4, 10)
	l := &Locacao{
		DataDevolucaoPrevista: &prevista,
		ValorDiaria:           decimal.NewFromInt(120),
	}

	testes := []struct {
		nome      string
		devolucao time.Time
		esperado  string
	}{
		{"devolucao no horario", dia(4, 10), "0.00"},
		{"devolucao antecipada", dia(3, 10), "0.00"},
		{"uma hora de atraso cobra um dia", dia(4, 11), "60.00"},
		{"um dia e meio de atraso cobra dois dias", dia(5, 22), "120.00"},
		{"dois dias exatos de atraso", dia(6, 10), "120.00"},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.esperado, l.CalcularMultaAtraso(tt.devolucao).StringFixed(2))
		})
	}
}

func TestCalcularMultaAtrasoSemPrevista(t *testing.T) {
	l := &Locacao{ValorDiaria: decimal.NewFromInt(120)}
	assert.True(t, l.CalcularMultaAtraso(dia(30, 10)).IsZero())
}

// Exemplo completo da cobrança: 3 diárias a 120, odômetro de 10000 a
// 10350 com franquia de 100 km/dia e km extra a 0,50 — total 385,00.
func TestCobrancaCompleta(t *testing.T) {
	retirada := dia(1, 10)
	devolucao := dia(4, 10)

	l := &Locacao{
		DataRetirada:      retirada,
		OdometroRetirada:  10000,
		KmPermitidoPorDia: 100,
		ValorDiaria:       decimal.NewFromInt(120),
		ValorKmExtra:      decimal.NewFromFloat(0.50),
	}

	l.TotalDias = CalcularTotalDias(retirada, devolucao)
	l.KmExtra = l.CalcularKmExtra(10350)
	l.MultaAtraso = l.CalcularMultaAtraso(devolucao)
	l.Subtotal = l.CalcularSubtotal()
	l.Total = l.CalcularTotal()

	assert.Equal(t, 3, l.TotalDias)
	assert.Equal(t, 50, l.KmExtra)
	assert.Equal(t, "0.00", l.MultaAtraso.StringFixed(2))
	assert.Equal(t, "385.00", l.Subtotal.StringFixed(2))
	assert.Equal(t, "385.00", l.Total.StringFixed(2))
}

func TestCobrancaComAtraso(t *testing.T) {
	retirada := dia(1, 10)
	prevista := dia(3, 10)
	devolucao := dia(4, 10)

	l := &Locacao{
		DataRetirada:          retirada,
		DataDevolucaoPrevista: &prevista,
		OdometroRetirada:      5000,
		KmPermitidoPorDia:     100,
		ValorDiaria:           decimal.NewFromInt(100),
		ValorKmExtra:          decimal.NewFromInt(1),
	}

	l.TotalDias = CalcularTotalDias(retirada, devolucao)
	l.KmExtra = l.CalcularKmExtra(5100)
	l.MultaAtraso = l.CalcularMultaAtraso(devolucao)
	l.Subtotal = l.CalcularSubtotal()
	l.Total = l.CalcularTotal()

	assert.Equal(t, 3, l.TotalDias)
	assert.Equal(t, 0, l.KmExtra)
	// Um dia de atraso: 50% da diária.
	assert.Equal(t, "50.00", l.MultaAtraso.StringFixed(2))
	assert.Equal(t, "300.00", l.Subtotal.StringFixed(2))
	assert.Equal(t, "350.00", l.Total.StringFixed(2))
}

func TestCalcularTotalNuncaNegativo(t *testing.T) {
	l := &Locacao{
		Subtotal: decimal.NewFromInt(100),
		Multas:   decimal.NewFromInt(-500),
	}
	assert.True(t, l.CalcularTotal().IsZero())
}

func TestPodeTransicionar(t *testing.T) {
	testes := []struct {
		nome     string
		de, para string
		permite  bool
	}{
		{"ativa conclui", StatusAtiva, StatusConcluida, true},
		{"ativa cancela", StatusAtiva, StatusCancelada, true},
		{"concluida e terminal", StatusConcluida, StatusAtiva, false},
		{"cancelada e terminal", StatusCancelada, StatusConcluida, false},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.permite, PodeTransicionar(tt.de, tt.para))
		})
	}
}
