package auditoria

import (
	"time"
)

// Entidade identifica, em tempo de compilação, o tipo de registro auditado.
type Entidade string

const (
	EntidadeVeiculo    Entidade = "Veiculo"
	EntidadeCliente    Entidade = "Cliente"
	EntidadeReserva    Entidade = "Reserva"
	EntidadeLocacao    Entidade = "Locacao"
	EntidadeManutencao Entidade = "Manutencao"
	EntidadeUsuario    Entidade = "Usuario"
)

// Ações registradas na trilha de auditoria.
const (
	AcaoCriado     = "created"
	AcaoAtualizado = "updated"
	AcaoExcluido   = "deleted"
	AcaoCancelado  = "cancelled"
)

// Snapshot é o retrato chave→valor de um registro antes/depois da mutação.
type Snapshot map[string]interface{}

// Ator identifica quem executou a operação e de onde.
type Ator struct {
	UsuarioID uint
	IP        string
	UserAgent string
}

// LogAuditoria é o registro persistido da trilha de auditoria.
type LogAuditoria struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UsuarioID  *uint     `gorm:"index" json:"usuarioId,omitempty"`
	Acao       string    `gorm:"size:50;not null;index" json:"acao"`
	Entidade   Entidade  `gorm:"size:50;not null;index:idx_entidade_registro" json:"entidade"`
	EntidadeID uint      `gorm:"index:idx_entidade_registro" json:"entidadeId"`
	Antes      Snapshot  `gorm:"type:jsonb;serializer:json" json:"antes,omitempty"`
	Depois     Snapshot  `gorm:"type:jsonb;serializer:json" json:"depois,omitempty"`
	EnderecoIP string    `gorm:"size:45" json:"enderecoIp,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	Descricao  string    `json:"descricao,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

// TableName fixa o nome da tabela (a pluralização automática não serve aqui).
func (LogAuditoria) TableName() string { return "logs_auditoria" }
