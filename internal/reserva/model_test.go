package reserva

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dia(d int, hora int) time.Time {
	return time.Date(2025, 1, d, hora, 0, 0, 0, time.UTC)
}

func TestPeriodosConflitam(t *testing.T) {
	testes := []struct {
		nome     string
		i1, f1   time.Time
		i2, f2   time.Time
		conflito bool
	}{
		{"sobreposicao parcial", dia(1, 10), dia(3, 10), dia(2, 10), dia(4, 10), true},
		{"contido", dia(1, 10), dia(5, 10), dia(2, 10), dia(3, 10), true},
		{"identicos", dia(1, 10), dia(3, 10), dia(1, 10), dia(3, 10), true},
		{"fim toca inicio", dia(1, 10), dia(3, 10), dia(3, 10), dia(5, 10), false},
		{"inicio toca fim", dia(3, 10), dia(5, 10), dia(1, 10), dia(3, 10), false},
		{"disjuntos", dia(1, 10), dia(2, 10), dia(3, 10), dia(4, 10), false},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.conflito, PeriodosConflitam(tt.i1, tt.f1, tt.i2, tt.f2))
			// A regra é simétrica.
			assert.Equal(t, tt.conflito, PeriodosConflitam(tt.i2, tt.f2, tt.i1, tt.f1))
		})
	}
}

func TestPodeTransicionar(t *testing.T) {
	testes := []struct {
		nome     string
		de, para string
		permite  bool
	}{
		{"pendente confirma", StatusPendente, StatusConfirmada, true},
		{"pendente cancela", StatusPendente, StatusCancelada, true},
		{"pendente nao conclui", StatusPendente, StatusConcluida, false},
		{"confirmada conclui", StatusConfirmada, StatusConcluida, true},
		{"confirmada cancela", StatusConfirmada, StatusCancelada, true},
		{"confirmada nao volta a pendente", StatusConfirmada, StatusPendente, false},
		{"cancelada e terminal", StatusCancelada, StatusPendente, false},
		{"concluida e terminal", StatusConcluida, StatusCancelada, false},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.permite, PodeTransicionar(tt.de, tt.para))
		})
	}
}

func TestEstaAtiva(t *testing.T) {
	assert.True(t, (&Reserva{Status: StatusPendente}).EstaAtiva())
	assert.True(t, (&Reserva{Status: StatusConfirmada}).EstaAtiva())
	assert.False(t, (&Reserva{Status: StatusCancelada}).EstaAtiva())
	assert.False(t, (&Reserva{Status: StatusConcluida}).EstaAtiva())
}

func TestDias(t *testing.T) {
	r := &Reserva{DataInicio: dia(1, 10), DataFim: dia(4, 10)}
	assert.Equal(t, 3, r.Dias())
}
