package veiculo

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status de disponibilidade do veículo. Campo armazenado, mas mantido
// exclusivamente pelas operações donas da transição (reserva, locação,
// manutenção) dentro da seção crítica por veículo.
const (
	StatusDisponivel = "available"
	StatusLocado     = "rented"
	StatusManutencao = "maintenance"
)

// Categorias da frota.
const (
	CategoriaEconomico     = "Econômico"
	CategoriaIntermediario = "Intermediário"
	CategoriaExecutivo     = "Executivo"
	CategoriaSUV           = "SUV"
)

// CategoriaValida verifica se a categoria informada existe na frota.
func CategoriaValida(c string) bool {
	switch c {
	case CategoriaEconomico, CategoriaIntermediario, CategoriaExecutivo, CategoriaSUV:
		return true
	}
	return false
}

// Seguro guarda os dados da apólice vigente do veículo.
type Seguro struct {
	Nome     string     `json:"nome"`
	Numero   string     `json:"numero,omitempty"`
	Validade *time.Time `json:"validade,omitempty"`
}

// Veiculo representa um veículo da frota.
//
// A unicidade da placa vale apenas entre registros não inativados, por
// isso é garantida pelo serviço dentro da transação de escrita e não por
// índice único simples (que colidiria com registros soft-deletados).
type Veiculo struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Modelo        string          `gorm:"size:255;not null" json:"modelo"`
	Marca         string          `gorm:"size:255;not null" json:"marca"`
	Ano           int             `gorm:"not null" json:"ano"`
	Cor           string          `gorm:"size:100;not null" json:"cor"`
	Placa         string          `gorm:"size:10;not null;index" json:"placa"`
	Quilometragem int             `gorm:"not null;default:0" json:"quilometragem"`
	Categoria     string          `gorm:"size:50;not null;index" json:"categoria"`
	Status        string          `gorm:"size:20;not null;default:'available';index" json:"status"`
	Seguro        *Seguro         `gorm:"type:jsonb;serializer:json" json:"seguro,omitempty"`
	ValorDiaria   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valorDiaria"`
	Observacoes   string          `json:"observacoes,omitempty"`
}

// EstaDisponivel informa se o veículo pode ser locado.
func (v *Veiculo) EstaDisponivel() bool { return v.Status == StatusDisponivel }

// EstaLocado informa se o veículo está em posse de um cliente.
func (v *Veiculo) EstaLocado() bool { return v.Status == StatusLocado }

// EmManutencao informa se o veículo está indisponível por manutenção.
func (v *Veiculo) EmManutencao() bool { return v.Status == StatusManutencao }

// NomeCompleto retorna marca + modelo para mensagens e auditoria.
func (v *Veiculo) NomeCompleto() string { return v.Marca + " " + v.Modelo }

// Snapshot devolve o retrato do veículo para a trilha de auditoria.
func (v *Veiculo) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"modelo":        v.Modelo,
		"marca":         v.Marca,
		"ano":           v.Ano,
		"cor":           v.Cor,
		"placa":         v.Placa,
		"quilometragem": v.Quilometragem,
		"categoria":     v.Categoria,
		"status":        v.Status,
		"valorDiaria":   v.ValorDiaria.StringFixed(2),
		"observacoes":   v.Observacoes,
	}
}
