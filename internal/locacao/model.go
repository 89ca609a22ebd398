package locacao

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Status da locação. Ambos os destinos de "active" são terminais.
const (
	StatusAtiva     = "active"
	StatusConcluida = "completed"
	StatusCancelada = "cancelled"
)

// KmPermitidoPadrao é a franquia diária de quilometragem.
const KmPermitidoPadrao = 100

// fatorMultaAtraso: 50% da diária por dia de atraso.
var fatorMultaAtraso = decimal.NewFromFloat(0.5)

// transicoesPermitidas define o grafo de estados da locação.
var transicoesPermitidas = map[string][]string{
	StatusAtiva:     {StatusConcluida, StatusCancelada},
	StatusConcluida: {},
	StatusCancelada: {},
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

// Locacao representa a posse física do veículo por um cliente, da
// retirada à devolução. O valor da diária é copiado do veículo no
// momento da retirada: reajustes posteriores não afetam locações abertas.
type Locacao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ReservaID *uint `gorm:"index" json:"reservaId,omitempty"` // nula em locação direta (walk-in)
	VeiculoID uint  `gorm:"not null;index:idx_locacao_veiculo_status" json:"veiculoId"`
	ClienteID uint  `gorm:"not null;index" json:"clienteId"`
	UsuarioID uint  `gorm:"not null" json:"usuarioId"` // funcionário que operou

	DataRetirada          time.Time  `gorm:"not null;index" json:"dataRetirada"`
	DataDevolucao         *time.Time `gorm:"index" json:"dataDevolucao,omitempty"`
	DataDevolucaoPrevista *time.Time `json:"dataDevolucaoPrevista,omitempty"`

	OdometroRetirada  int  `gorm:"not null" json:"odometroRetirada"`
	OdometroDevolucao *int `json:"odometroDevolucao,omitempty"`

	EstadoRetirada  string `json:"estadoRetirada,omitempty"`  // condição do veículo na retirada
	EstadoDevolucao string `json:"estadoDevolucao,omitempty"` // condição do veículo na devolução

	TotalDias         int             `gorm:"not null;default:0" json:"totalDias"`
	KmPermitidoPorDia int             `gorm:"not null;default:100" json:"kmPermitidoPorDia"`
	ValorDiaria       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valorDiaria"`
	KmExtra           int             `gorm:"not null;default:0" json:"kmExtra"`
	ValorKmExtra      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"valorKmExtra"`
	MultaAtraso       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"multaAtraso"`
	Multas            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"multas"` // danos etc.
	Subtotal          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`

	Status      string `gorm:"size:20;not null;default:'active';index:idx_locacao_veiculo_status" json:"status"`
	Observacoes string `json:"observacoes,omitempty"`
}

// TableName fixa o nome da tabela (a pluralização automática não serve aqui).
func (Locacao) TableName() string { return "locacoes" }

// EstaAtiva informa se a locação está em andamento.
func (l *Locacao) EstaAtiva() bool { return l.Status == StatusAtiva }

// EstaConcluida informa se a locação foi finalizada.
func (l *Locacao) EstaConcluida() bool { return l.Status == StatusConcluida }

// CalcularTotalDias retorna a duração cobrada em diárias: teto da
// diferença em dias, mínimo de 1.
func CalcularTotalDias(retirada, devolucao time.Time) int {
	dias := int(math.Ceil(devolucao.Sub(retirada).Hours() / 24))
	if dias < 1 {
		dias = 1
	}
	return dias
}

// CalcularKmExtra retorna os quilômetros rodados além da franquia
// (TotalDias × KmPermitidoPorDia), nunca negativo.
func (l *Locacao) CalcularKmExtra(odometroDevolucao int) int {
	rodado := odometroDevolucao - l.OdometroRetirada
	permitido := l.TotalDias * l.KmPermitidoPorDia
	if extra := rodado - permitido; extra > 0 {
		return extra
	}
	return 0
}

// CalcularMultaAtraso retorna a multa por devolução após a data prevista:
// 50% da diária por dia de atraso, dia iniciado conta inteiro. Sem data
// prevista não há multa.
func (l *Locacao) CalcularMultaAtraso(devolucao time.Time) decimal.Decimal {
	if l.DataDevolucaoPrevista == nil || !devolucao.After(*l.DataDevolucaoPrevista) {
		return decimal.Zero
	}
	diasAtraso := int(math.Ceil(devolucao.Sub(*l.DataDevolucaoPrevista).Hours() / 24))
	return l.ValorDiaria.Mul(fatorMultaAtraso).Mul(decimal.NewFromInt(int64(diasAtraso)))
}

// CalcularSubtotal retorna diárias + km extra.
func (l *Locacao) CalcularSubtotal() decimal.Decimal {
	diarias := l.ValorDiaria.Mul(decimal.NewFromInt(int64(l.TotalDias)))
	kmExtra := l.ValorKmExtra.Mul(decimal.NewFromInt(int64(l.KmExtra)))
	return diarias.Add(kmExtra)
}

// CalcularTotal retorna subtotal + multa de atraso + multas adicionais,
// nunca negativo.
func (l *Locacao) CalcularTotal() decimal.Decimal {
	total := l.Subtotal.Add(l.MultaAtraso).Add(l.Multas)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Snapshot devolve o retrato da locação para a trilha de auditoria.
func (l *Locacao) Snapshot() map[string]interface{} {
	snap := map[string]interface{}{
		"veiculoId":        l.VeiculoID,
		"clienteId":        l.ClienteID,
		"dataRetirada":     l.DataRetirada,
		"odometroRetirada": l.OdometroRetirada,
		"totalDias":        l.TotalDias,
		"valorDiaria":      l.ValorDiaria.StringFixed(2),
		"kmExtra":          l.KmExtra,
		"multaAtraso":      l.MultaAtraso.StringFixed(2),
		"multas":           l.Multas.StringFixed(2),
		"subtotal":         l.Subtotal.StringFixed(2),
		"total":            l.Total.StringFixed(2),
		"status":           l.Status,
	}
	if l.DataDevolucao != nil {
		snap["dataDevolucao"] = *l.DataDevolucao
	}
	if l.OdometroDevolucao != nil {
		snap["odometroDevolucao"] = *l.OdometroDevolucao
	}
	return snap
}
