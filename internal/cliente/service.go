package cliente

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/erros"
)

// DadosCliente é a entrada do cadastro de cliente.
type DadosCliente struct {
	Nome        string
	CPF         string
	CNH         string
	Telefone    string
	Endereco    string
	Email       string
	Observacoes string
}

// AtualizacaoCliente é a entrada parcial da atualização.
type AtualizacaoCliente struct {
	Nome        *string
	CPF         *string
	CNH         *string
	Telefone    *string
	Endereco    *string
	Email       *string
	Observacoes *string
}

// Servico implementa o cadastro de clientes.
type Servico struct {
	DB        *gorm.DB
	Repo      *Repository
	Auditoria *auditoria.Servico
	Log       *zap.SugaredLogger
}

// NovoServico cria o serviço de clientes.
func NovoServico(db *gorm.DB, aud *auditoria.Servico, log *zap.SugaredLogger) *Servico {
	return &Servico{DB: db, Repo: NewRepository(), Auditoria: aud, Log: log}
}

// Criar cadastra um novo cliente com CPF normalizado e único.
func (s *Servico) Criar(ator auditoria.Ator, dados DadosCliente) (*Cliente, error) {
	if dados.Nome == "" {
		return nil, erros.Validacao("nome", "o nome é obrigatório")
	}
	cpf := NormalizarCPF(dados.CPF)
	if !CPFValido(cpf) {
		return nil, erros.Validacao("cpf", "CPF inválido")
	}

	c := &Cliente{
		Nome:        dados.Nome,
		CPF:         cpf,
		CNH:         dados.CNH,
		Telefone:    dados.Telefone,
		Endereco:    dados.Endereco,
		Email:       dados.Email,
		Observacoes: dados.Observacoes,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existe, err := s.Repo.CPFExiste(tx, cpf, 0)
		if err != nil {
			return err
		}
		if existe {
			return erros.Conflito("este CPF já está cadastrado")
		}
		return s.Repo.Salvar(tx, c)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarCriacao(ator, auditoria.EntidadeCliente, c.ID, c.Snapshot(),
		fmt.Sprintf("Cliente %s criado", c.Nome))
	return c, nil
}

// Atualizar aplica alterações parciais a um cliente existente.
func (s *Servico) Atualizar(ator auditoria.Ator, id uint, dados AtualizacaoCliente) (*Cliente, error) {
	var c *Cliente
	var antes auditoria.Snapshot

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		c, err = s.Repo.BuscarPorID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("cliente")
			}
			return err
		}
		antes = c.Snapshot()

		if dados.CPF != nil {
			cpf := NormalizarCPF(*dados.CPF)
			if !CPFValido(cpf) {
				return erros.Validacao("cpf", "CPF inválido")
			}
			existe, err := s.Repo.CPFExiste(tx, cpf, c.ID)
			if err != nil {
				return err
			}
			if existe {
				return erros.Conflito("este CPF já está cadastrado")
			}
			c.CPF = cpf
		}
		if dados.Nome != nil {
			if *dados.Nome == "" {
				return erros.Validacao("nome", "o nome é obrigatório")
			}
			c.Nome = *dados.Nome
		}
		if dados.CNH != nil {
			c.CNH = *dados.CNH
		}
		if dados.Telefone != nil {
			c.Telefone = *dados.Telefone
		}
		if dados.Endereco != nil {
			c.Endereco = *dados.Endereco
		}
		if dados.Email != nil {
			c.Email = *dados.Email
		}
		if dados.Observacoes != nil {
			c.Observacoes = *dados.Observacoes
		}

		return s.Repo.Atualizar(tx, c)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarAtualizacao(ator, auditoria.EntidadeCliente, c.ID, antes, c.Snapshot(),
		fmt.Sprintf("Cliente %s atualizado", c.Nome))
	return c, nil
}

// Inativar aplica soft delete. Recusado enquanto o cliente tiver locação
// ativa ou reserva pendente/confirmada.
func (s *Servico) Inativar(ator auditoria.Ator, id uint) error {
	var c *Cliente

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		c, err = s.Repo.BuscarPorID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("cliente")
			}
			return err
		}

		locado, err := s.Repo.TemLocacaoAtiva(tx, c.ID)
		if err != nil {
			return err
		}
		if locado {
			return erros.Conflito("não é possível inativar um cliente com locação ativa")
		}
		reservado, err := s.Repo.TemReservaAtiva(tx, c.ID)
		if err != nil {
			return err
		}
		if reservado {
			return erros.Conflito("não é possível inativar um cliente com reservas ativas")
		}

		return s.Repo.Inativar(tx, c)
	})
	if err != nil {
		return err
	}

	s.Auditoria.RegistrarExclusao(ator, auditoria.EntidadeCliente, c.ID, c.Snapshot(),
		fmt.Sprintf("Cliente %s inativado", c.Nome))
	return nil
}

// BuscarPorID retorna um cliente não inativado.
func (s *Servico) BuscarPorID(id uint) (*Cliente, error) {
	c, err := s.Repo.BuscarPorID(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("cliente")
		}
		return nil, err
	}
	return c, nil
}

// Listar retorna clientes paginados.
func (s *Servico) Listar(busca string, limite, pagina int) ([]Cliente, int64, error) {
	return s.Repo.Listar(s.DB, busca, limite, pagina)
}
