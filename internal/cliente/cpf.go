package cliente

import "strings"

// NormalizarCPF remove pontuação e mantém apenas os dígitos.
// A operação é idempotente.
func NormalizarCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPFValido valida o CPF normalizado: 11 dígitos, não todos iguais e
// dígitos verificadores corretos.
func CPFValido(cpf string) bool {
	cpf = NormalizarCPF(cpf)
	if len(cpf) != 11 {
		return false
	}

	// CPFs com todos os dígitos iguais passam no cálculo, mas são inválidos.
	todosIguais := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			todosIguais = false
			break
		}
	}
	if todosIguais {
		return false
	}

	return digitoVerificador(cpf, 9) == int(cpf[9]-'0') &&
		digitoVerificador(cpf, 10) == int(cpf[10]-'0')
}

// digitoVerificador calcula o dígito na posição indicada (9 ou 10).
func digitoVerificador(cpf string, posicao int) int {
	peso := posicao + 1
	soma := 0
	for i := 0; i < posicao; i++ {
		soma += int(cpf[i]-'0') * (peso - i)
	}
	resto := soma % 11
	if resto < 2 {
		return 0
	}
	return 11 - resto
}
