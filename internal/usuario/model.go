package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Usuario representa um funcionário da locadora com acesso ao sistema.
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome    string `gorm:"size:255;not null" json:"nome"`
	Email   string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Senha   string `gorm:"not null" json:"-"`
	IsAdmin bool   `gorm:"not null;default:false" json:"isAdmin"`
}
