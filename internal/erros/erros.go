// internal/erros/erros.go
package erros

import (
	"errors"
	"fmt"
	"net/http"
)

// ErroValidacao indica entrada malformada (placa fora do padrão, odômetro
// negativo, período invertido). Nenhum estado é alterado.
type ErroValidacao struct {
	Campo    string
	Mensagem string
}

func (e *ErroValidacao) Error() string {
	if e.Campo != "" {
		return fmt.Sprintf("%s: %s", e.Campo, e.Mensagem)
	}
	return e.Mensagem
}

// Validacao cria um erro de validação associado a um campo.
func Validacao(campo, mensagem string) error {
	return &ErroValidacao{Campo: campo, Mensagem: mensagem}
}

// ErroConflito indica violação de regra de negócio contra o estado atual
// (placa duplicada, reserva sobreposta, veículo locado).
type ErroConflito struct {
	Mensagem string
}

func (e *ErroConflito) Error() string { return e.Mensagem }

// Conflito cria um erro de conflito de negócio.
func Conflito(mensagem string) error {
	return &ErroConflito{Mensagem: mensagem}
}

// ErroEstadoInvalido indica transição de estado ilegal (ex.: confirmar uma
// reserva já cancelada). O cliente provavelmente está com uma visão antiga.
type ErroEstadoInvalido struct {
	Mensagem string
}

func (e *ErroEstadoInvalido) Error() string { return e.Mensagem }

// EstadoInvalido cria um erro de transição de estado.
func EstadoInvalido(mensagem string) error {
	return &ErroEstadoInvalido{Mensagem: mensagem}
}

// ErroNaoEncontrado indica ID desconhecido ou registro inativado.
type ErroNaoEncontrado struct {
	Entidade string
}

func (e *ErroNaoEncontrado) Error() string {
	return fmt.Sprintf("%s não encontrado(a)", e.Entidade)
}

// NaoEncontrado cria um erro de registro inexistente.
func NaoEncontrado(entidade string) error {
	return &ErroNaoEncontrado{Entidade: entidade}
}

// StatusHTTP traduz a taxonomia de erros do domínio para códigos HTTP.
func StatusHTTP(err error) int {
	var (
		validacao      *ErroValidacao
		conflito       *ErroConflito
		estadoInvalido *ErroEstadoInvalido
		naoEncontrado  *ErroNaoEncontrado
	)
	switch {
	case errors.As(err, &validacao):
		return http.StatusBadRequest
	case errors.As(err, &conflito):
		return http.StatusConflict
	case errors.As(err, &estadoInvalido):
		return http.StatusUnprocessableEntity
	case errors.As(err, &naoEncontrado):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Responder escreve o erro na resposta HTTP com o status adequado.
// Erros internos não vazam detalhe para o cliente.
func Responder(w http.ResponseWriter, err error) {
	status := StatusHTTP(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "erro interno", status)
		return
	}
	http.Error(w, err.Error(), status)
}
