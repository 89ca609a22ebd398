package veiculo

import (
	"regexp"
	"strings"
)

// Formatos aceitos depois da normalização: padrão antigo (ABC1234) e
// padrão Mercosul (ABC1D23).
var (
	placaAntiga   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	placaMercosul = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// NormalizarPlaca remove espaços e hífens e converte para maiúsculas.
// A operação é idempotente.
func NormalizarPlaca(placa string) string {
	placa = strings.ReplaceAll(placa, " ", "")
	placa = strings.ReplaceAll(placa, "-", "")
	return strings.ToUpper(placa)
}

// PlacaValida verifica se a placa (já normalizada ou não) está em um dos
// formatos aceitos.
func PlacaValida(placa string) bool {
	p := NormalizarPlaca(placa)
	return placaAntiga.MatchString(p) || placaMercosul.MatchString(p)
}
