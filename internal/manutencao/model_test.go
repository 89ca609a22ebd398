package manutencao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTipoValido(t *testing.T) {
	assert.True(t, TipoValido(TipoPreventiva))
	assert.True(t, TipoValido(TipoCorretiva))
	assert.False(t, TipoValido("revisao"))
	assert.False(t, TipoValido(""))
}

func TestPodeTransicionar(t *testing.T) {
	testes := []struct {
		nome     string
		de, para string
		permite  bool
	}{
		{"agendada inicia", StatusAgendada, StatusEmAndamento, true},
		{"agendada conclui direto", StatusAgendada, StatusConcluida, true},
		{"agendada cancela", StatusAgendada, StatusCancelada, true},
		{"em andamento conclui", StatusEmAndamento, StatusConcluida, true},
		{"em andamento cancela", StatusEmAndamento, StatusCancelada, true},
		{"em andamento nao volta", StatusEmAndamento, StatusAgendada, false},
		{"concluida e terminal", StatusConcluida, StatusEmAndamento, false},
		{"cancelada e terminal", StatusCancelada, StatusAgendada, false},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.permite, PodeTransicionar(tt.de, tt.para))
		})
	}
}

func TestEstaAberta(t *testing.T) {
	assert.True(t, (&Manutencao{Status: StatusAgendada}).EstaAberta())
	assert.True(t, (&Manutencao{Status: StatusEmAndamento}).EstaAberta())
	assert.False(t, (&Manutencao{Status: StatusConcluida}).EstaAberta())
	assert.False(t, (&Manutencao{Status: StatusCancelada}).EstaAberta())
}
