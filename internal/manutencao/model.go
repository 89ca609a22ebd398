package manutencao

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de manutenção.
const (
	TipoPreventiva = "preventive"
	TipoCorretiva  = "corrective"
)

// TipoValido verifica o tipo informado.
func TipoValido(t string) bool {
	return t == TipoPreventiva || t == TipoCorretiva
}

// Status da manutenção.
const (
	StatusAgendada    = "scheduled"
	StatusEmAndamento = "in_progress"
	StatusConcluida   = "completed"
	StatusCancelada   = "cancelled"
)

// transicoesPermitidas define o grafo de estados da manutenção.
var transicoesPermitidas = map[string][]string{
	StatusAgendada:    {StatusEmAndamento, StatusConcluida, StatusCancelada},
	StatusEmAndamento: {StatusConcluida, StatusCancelada},
	StatusConcluida:   {},
	StatusCancelada:   {},
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

// Manutencao registra um serviço agendado ou executado num veículo.
// Enquanto aberta (agendada ou em andamento), prende o veículo fora do
// status disponível.
type Manutencao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	VeiculoID uint  `gorm:"not null;index:idx_manutencao_veiculo_status" json:"veiculoId"`
	UsuarioID *uint `json:"usuarioId,omitempty"` // funcionário que registrou

	Tipo          string          `gorm:"size:20;not null" json:"tipo"`
	DataAgendada  time.Time       `gorm:"not null;index" json:"dataAgendada"`
	DataConclusao *time.Time      `json:"dataConclusao,omitempty"`
	Custo         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"custo"`
	Prestador     string          `gorm:"size:255" json:"prestador,omitempty"`
	Descricao     string          `json:"descricao,omitempty"`
	Status        string          `gorm:"size:20;not null;default:'scheduled';index:idx_manutencao_veiculo_status" json:"status"`
	Observacoes   string          `json:"observacoes,omitempty"`
}

// TableName fixa o nome da tabela (a pluralização automática não serve aqui).
func (Manutencao) TableName() string { return "manutencoes" }

// EstaAberta informa se a manutenção ainda bloqueia o veículo.
func (m *Manutencao) EstaAberta() bool {
	return m.Status == StatusAgendada || m.Status == StatusEmAndamento
}

// Snapshot devolve o retrato da manutenção para a trilha de auditoria.
func (m *Manutencao) Snapshot() map[string]interface{} {
	snap := map[string]interface{}{
		"veiculoId":    m.VeiculoID,
		"tipo":         m.Tipo,
		"dataAgendada": m.DataAgendada,
		"custo":        m.Custo.StringFixed(2),
		"prestador":    m.Prestador,
		"status":       m.Status,
	}
	if m.DataConclusao != nil {
		snap["dataConclusao"] = *m.DataConclusao
	}
	return snap
}
