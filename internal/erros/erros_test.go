package erros

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusHTTP(t *testing.T) {
	testes := []struct {
		nome   string
		err    error
		status int
	}{
		{"validacao", Validacao("placa", "formato inválido"), http.StatusBadRequest},
		{"conflito", Conflito("placa já cadastrada"), http.StatusConflict},
		{"estado invalido", EstadoInvalido("reserva cancelada não confirma"), http.StatusUnprocessableEntity},
		{"nao encontrado", NaoEncontrado("veículo"), http.StatusNotFound},
		{"erro desconhecido", errors.New("falha no banco"), http.StatusInternalServerError},
		{"erro embrulhado", fmt.Errorf("ao criar: %w", Conflito("duplicado")), http.StatusConflict},
	}

	for _, tt := range testes {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusHTTP(tt.err))
		})
	}
}

func TestResponderNaoVazaErroInterno(t *testing.T) {
	rec := httptest.NewRecorder()
	Responder(rec, errors.New("dial tcp 10.0.0.5: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "erro interno")
}

func TestResponderErroDeDominio(t *testing.T) {
	rec := httptest.NewRecorder()
	Responder(rec, Validacao("cpf", "CPF inválido"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cpf: CPF inválido")
}

func TestMensagens(t *testing.T) {
	assert.Equal(t, "placa: formato inválido", Validacao("placa", "formato inválido").Error())
	assert.Equal(t, "veículo não encontrado(a)", NaoEncontrado("veículo").Error())
}
