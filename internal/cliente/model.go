package cliente

import (
	"time"

	"gorm.io/gorm"
)

// Cliente representa o locatário. Nunca é removido fisicamente: locações
// e reservas históricas continuam referenciando o registro.
type Cliente struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome        string `gorm:"size:255;not null;index" json:"nome"`
	CPF         string `gorm:"size:11;not null;index" json:"cpf"` // normalizado, só dígitos
	CNH         string `gorm:"size:20" json:"cnh,omitempty"`
	Telefone    string `gorm:"size:20" json:"telefone,omitempty"`
	Endereco    string `json:"endereco,omitempty"`
	Email       string `gorm:"size:255;index" json:"email,omitempty"`
	Observacoes string `json:"observacoes,omitempty"`
}

// Snapshot devolve o retrato do cliente para a trilha de auditoria.
func (c *Cliente) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"nome":     c.Nome,
		"cpf":      c.CPF,
		"cnh":      c.CNH,
		"telefone": c.Telefone,
		"endereco": c.Endereco,
		"email":    c.Email,
	}
}
