package reserva

import (
	"time"
)

// Status da reserva.
const (
	StatusPendente   = "pending"
	StatusConfirmada = "confirmed"
	StatusCancelada  = "cancelled"
	StatusConcluida  = "completed" // convertida em locação
)

// transicoesPermitidas define o grafo de estados: só pendente confirma,
// só pendente/confirmada cancela, só confirmada vira locação.
var transicoesPermitidas = map[string][]string{
	StatusPendente:   {StatusConfirmada, StatusCancelada},
	StatusConfirmada: {StatusConcluida, StatusCancelada},
	StatusCancelada:  {},
	StatusConcluida:  {},
}

// PodeTransicionar verifica se de -> para é uma transição válida.
func PodeTransicionar(de, para string) bool {
	for _, s := range transicoesPermitidas[de] {
		if s == para {
			return true
		}
	}
	return false
}

// Reserva é a intenção de locar um veículo num período [início, fim).
type Reserva struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	VeiculoID uint `gorm:"not null;index:idx_reserva_periodo" json:"veiculoId"`
	ClienteID uint `gorm:"not null;index" json:"clienteId"`
	UsuarioID uint `gorm:"not null" json:"usuarioId"` // funcionário que criou

	DataInicio time.Time `gorm:"not null;index:idx_reserva_periodo" json:"dataInicio"`
	DataFim    time.Time `gorm:"not null;index:idx_reserva_periodo" json:"dataFim"`

	Status      string `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Observacoes string `json:"observacoes,omitempty"`
}

// EstaAtiva informa se a reserva ainda segura o veículo (pendente ou
// confirmada).
func (r *Reserva) EstaAtiva() bool {
	return r.Status == StatusPendente || r.Status == StatusConfirmada
}

// Dias retorna a duração da reserva em dias inteiros.
func (r *Reserva) Dias() int {
	return int(r.DataFim.Sub(r.DataInicio).Hours() / 24)
}

// PeriodosConflitam aplica a regra de sobreposição de intervalos
// semiabertos [i1, f1) e [i2, f2): há conflito sse i1 < f2 e i2 < f1.
// Períodos que apenas se tocam na borda não conflitam.
func PeriodosConflitam(i1, f1, i2, f2 time.Time) bool {
	return i1.Before(f2) && i2.Before(f1)
}

// Snapshot devolve o retrato da reserva para a trilha de auditoria.
func (r *Reserva) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"veiculoId":  r.VeiculoID,
		"clienteId":  r.ClienteID,
		"dataInicio": r.DataInicio,
		"dataFim":    r.DataFim,
		"status":     r.Status,
	}
}
