package manutencao

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/erros"
	"github.com/locadora-bm/api-locadora/internal/veiculo"
)

// DadosAgendamento é a entrada do agendamento de manutenção.
type DadosAgendamento struct {
	VeiculoID    uint
	UsuarioID    uint
	Tipo         string
	DataAgendada time.Time
	Prestador    string
	Descricao    string
	Observacoes  string
}

// DadosConclusao é a entrada do fechamento da manutenção.
type DadosConclusao struct {
	Custo         decimal.Decimal
	DataConclusao time.Time
	Observacoes   string
}

// Servico controla o ciclo de vida das manutenções e as transições de
// status do veículo acopladas a ele.
type Servico struct {
	DB        *gorm.DB
	Repo      *Repository
	Veiculos  *veiculo.Repository
	Auditoria *auditoria.Servico
	Log       *zap.SugaredLogger
}

// NovoServico cria o serviço de manutenções.
func NovoServico(db *gorm.DB, aud *auditoria.Servico, log *zap.SugaredLogger) *Servico {
	return &Servico{
		DB:        db,
		Repo:      NewRepository(),
		Veiculos:  veiculo.NewRepository(),
		Auditoria: aud,
		Log:       log,
	}
}

// Agendar cria uma manutenção. Veículo disponível vai imediatamente para
// o status de manutenção; veículo locado mantém o status e a ordem fica
// na fila até a devolução.
func (s *Servico) Agendar(ator auditoria.Ator, dados DadosAgendamento) (*Manutencao, error) {
	if !TipoValido(dados.Tipo) {
		return nil, erros.Validacao("tipo", "o tipo deve ser preventive ou corrective")
	}
	if dados.DataAgendada.IsZero() {
		return nil, erros.Validacao("dataAgendada", "a data agendada é obrigatória")
	}

	var m *Manutencao
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		v, err := s.Veiculos.BuscarPorIDComTrava(tx, dados.VeiculoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("veículo")
			}
			return err
		}

		usuarioID := dados.UsuarioID
		m = &Manutencao{
			VeiculoID:    dados.VeiculoID,
			Tipo:         dados.Tipo,
			DataAgendada: dados.DataAgendada,
			Custo:        decimal.Zero,
			Prestador:    dados.Prestador,
			Descricao:    dados.Descricao,
			Status:       StatusAgendada,
			Observacoes:  dados.Observacoes,
		}
		if usuarioID != 0 {
			m.UsuarioID = &usuarioID
		}
		if err := s.Repo.Salvar(tx, m); err != nil {
			return err
		}

		if v.EstaDisponivel() {
			v.Status = veiculo.StatusManutencao
			return s.Veiculos.Atualizar(tx, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarCriacao(ator, auditoria.EntidadeManutencao, m.ID, m.Snapshot(),
		fmt.Sprintf("Manutenção %s agendada para o veículo %d", m.Tipo, m.VeiculoID))
	return m, nil
}

// IniciarExecucao move a manutenção de agendada para em andamento.
func (s *Servico) IniciarExecucao(ator auditoria.Ator, id uint) (*Manutencao, error) {
	var m *Manutencao
	var antes auditoria.Snapshot

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		m, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("manutenção")
			}
			return err
		}
		antes = m.Snapshot()

		if !PodeTransicionar(m.Status, StatusEmAndamento) {
			return erros.EstadoInvalido(fmt.Sprintf("manutenção %s não pode ser iniciada", m.Status))
		}
		m.Status = StatusEmAndamento
		return s.Repo.Atualizar(tx, m)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarAtualizacao(ator, auditoria.EntidadeManutencao, m.ID, antes, m.Snapshot(),
		fmt.Sprintf("Manutenção %d em andamento", m.ID))
	return m, nil
}

// Concluir fecha a manutenção com o custo final. O veículo volta a ficar
// disponível somente se não estiver locado e não houver outra manutenção
// aberta.
func (s *Servico) Concluir(ator auditoria.Ator, id uint, dados DadosConclusao) (*Manutencao, error) {
	if dados.Custo.IsNegative() {
		return nil, erros.Validacao("custo", "o custo deve ser maior ou igual a zero")
	}

	var m *Manutencao
	var antes auditoria.Snapshot

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		m, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("manutenção")
			}
			return err
		}
		antes = m.Snapshot()

		if !PodeTransicionar(m.Status, StatusConcluida) {
			return erros.EstadoInvalido(fmt.Sprintf("manutenção %s não pode ser concluída", m.Status))
		}

		dataConclusao := dados.DataConclusao
		if dataConclusao.IsZero() {
			dataConclusao = time.Now()
		}
		m.Status = StatusConcluida
		m.Custo = dados.Custo
		m.DataConclusao = &dataConclusao
		if dados.Observacoes != "" {
			m.Observacoes = dados.Observacoes
		}
		if err := s.Repo.Atualizar(tx, m); err != nil {
			return err
		}

		return s.liberarVeiculo(tx, m.VeiculoID, m.ID)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarAtualizacao(ator, auditoria.EntidadeManutencao, m.ID, antes, m.Snapshot(),
		fmt.Sprintf("Manutenção %d concluída, custo %s", m.ID, m.Custo.StringFixed(2)))
	return m, nil
}

// Cancelar aborta uma manutenção aberta, com a mesma liberação de veículo
// da conclusão.
func (s *Servico) Cancelar(ator auditoria.Ator, id uint) error {
	var m *Manutencao

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		m, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("manutenção")
			}
			return err
		}
		if !PodeTransicionar(m.Status, StatusCancelada) {
			return erros.EstadoInvalido(fmt.Sprintf("manutenção %s não pode ser cancelada", m.Status))
		}

		m.Status = StatusCancelada
		if err := s.Repo.Atualizar(tx, m); err != nil {
			return err
		}

		return s.liberarVeiculo(tx, m.VeiculoID, m.ID)
	})
	if err != nil {
		return err
	}

	s.Auditoria.RegistrarCancelamento(ator, auditoria.EntidadeManutencao, m.ID,
		fmt.Sprintf("Manutenção %d cancelada", m.ID))
	return nil
}

// BuscarPorID retorna uma manutenção.
func (s *Servico) BuscarPorID(id uint) (*Manutencao, error) {
	m, err := s.Repo.BuscarPorID(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("manutenção")
		}
		return nil, err
	}
	return m, nil
}

// ListarPendentes retorna as manutenções agendadas ou em andamento.
func (s *Servico) ListarPendentes() ([]Manutencao, error) {
	return s.Repo.ListarPendentes(s.DB)
}

// ListarPorVeiculo retorna o histórico de manutenções de um veículo.
func (s *Servico) ListarPorVeiculo(veiculoID uint) ([]Manutencao, error) {
	return s.Repo.ListarPorVeiculo(s.DB, veiculoID)
}

// liberarVeiculo devolve o veículo ao status disponível quando a ordem
// encerrada era a última aberta e ele está no status de manutenção. Um
// veículo locado nunca muda de status aqui.
func (s *Servico) liberarVeiculo(tx *gorm.DB, veiculoID, manutencaoID uint) error {
	v, err := s.Veiculos.BuscarPorIDComTrava(tx, veiculoID)
	if err != nil {
		return err
	}
	if !v.EmManutencao() {
		return nil
	}
	aberta, err := s.Repo.ExisteOutraAberta(tx, veiculoID, manutencaoID)
	if err != nil {
		return err
	}
	if aberta {
		return nil
	}
	v.Status = veiculo.StatusDisponivel
	return s.Veiculos.Atualizar(tx, v)
}
