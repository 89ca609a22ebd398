package auditoria

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Servico grava registros de auditoria. A gravação acontece depois do
// commit da mutação principal: uma falha aqui nunca desfaz a operação,
// apenas é registrada no log da aplicação.
type Servico struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

// NovoServico cria o serviço de auditoria.
func NovoServico(db *gorm.DB, log *zap.SugaredLogger) *Servico {
	return &Servico{DB: db, Log: log}
}

// Registrar persiste um registro de auditoria.
func (s *Servico) Registrar(ator Ator, acao string, entidade Entidade, entidadeID uint, antes, depois Snapshot, descricao string) {
	if descricao == "" {
		descricao = descricaoPadrao(acao, entidade)
	}
	var usuarioID *uint
	if ator.UsuarioID != 0 {
		id := ator.UsuarioID
		usuarioID = &id
	}
	registro := LogAuditoria{
		UsuarioID:  usuarioID,
		Acao:       acao,
		Entidade:   entidade,
		EntidadeID: entidadeID,
		Antes:      antes,
		Depois:     depois,
		EnderecoIP: ator.IP,
		UserAgent:  ator.UserAgent,
		Descricao:  descricao,
	}
	if err := s.DB.Create(&registro).Error; err != nil {
		s.Log.Errorw("falha ao gravar auditoria",
			"acao", acao,
			"entidade", entidade,
			"entidadeId", entidadeID,
			"erro", err,
		)
	}
}

// RegistrarCriacao grava a criação de um registro.
func (s *Servico) RegistrarCriacao(ator Ator, entidade Entidade, entidadeID uint, depois Snapshot, descricao string) {
	s.Registrar(ator, AcaoCriado, entidade, entidadeID, nil, depois, descricao)
}

// RegistrarAtualizacao grava a alteração de um registro, com antes/depois.
func (s *Servico) RegistrarAtualizacao(ator Ator, entidade Entidade, entidadeID uint, antes, depois Snapshot, descricao string) {
	s.Registrar(ator, AcaoAtualizado, entidade, entidadeID, antes, depois, descricao)
}

// RegistrarExclusao grava a inativação de um registro.
func (s *Servico) RegistrarExclusao(ator Ator, entidade Entidade, entidadeID uint, antes Snapshot, descricao string) {
	s.Registrar(ator, AcaoExcluido, entidade, entidadeID, antes, nil, descricao)
}

// RegistrarCancelamento grava o cancelamento de uma operação.
func (s *Servico) RegistrarCancelamento(ator Ator, entidade Entidade, entidadeID uint, descricao string) {
	s.Registrar(ator, AcaoCancelado, entidade, entidadeID, nil, nil, descricao)
}

func descricaoPadrao(acao string, entidade Entidade) string {
	switch acao {
	case AcaoCriado:
		return fmt.Sprintf("%s criado(a)", entidade)
	case AcaoAtualizado:
		return fmt.Sprintf("%s atualizado(a)", entidade)
	case AcaoExcluido:
		return fmt.Sprintf("%s inativado(a)", entidade)
	case AcaoCancelado:
		return fmt.Sprintf("%s cancelado(a)", entidade)
	default:
		return fmt.Sprintf("ação %q em %s", acao, entidade)
	}
}
