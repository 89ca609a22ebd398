package reserva

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/cliente"
	"github.com/locadora-bm/api-locadora/internal/erros"
	"github.com/locadora-bm/api-locadora/internal/locacao"
	"github.com/locadora-bm/api-locadora/internal/veiculo"
)

// DadosReserva é a entrada da criação de reserva.
type DadosReserva struct {
	VeiculoID   uint
	ClienteID   uint
	UsuarioID   uint
	DataInicio  time.Time
	DataFim     time.Time
	Observacoes string
}

// DadosConversao é a entrada da conversão de reserva em locação.
type DadosConversao struct {
	DataRetirada      time.Time
	OdometroRetirada  int
	EstadoRetirada    string
	KmPermitidoPorDia int
	ValorKmExtra      decimal.Decimal
	Observacoes       string
}

// Servico implementa a gestão de reservas: criação com checagem de
// sobreposição, confirmação, cancelamento e conversão em locação.
type Servico struct {
	DB        *gorm.DB
	Repo      *Repository
	Veiculos  *veiculo.Repository
	Clientes  *cliente.Repository
	Locacoes  *locacao.Servico
	Auditoria *auditoria.Servico
	Log       *zap.SugaredLogger
}

// NovoServico cria o serviço de reservas.
func NovoServico(db *gorm.DB, locacoes *locacao.Servico, aud *auditoria.Servico, log *zap.SugaredLogger) *Servico {
	return &Servico{
		DB:        db,
		Repo:      NewRepository(),
		Veiculos:  veiculo.NewRepository(),
		Clientes:  cliente.NewRepository(),
		Locacoes:  locacoes,
		Auditoria: aud,
		Log:       log,
	}
}

// Criar registra uma reserva pendente. A trava da linha do veículo
// serializa a checagem de sobreposição com a inserção: duas reservas
// concorrentes para o mesmo período nunca passam ambas.
func (s *Servico) Criar(ator auditoria.Ator, dados DadosReserva) (*Reserva, error) {
	if !dados.DataFim.After(dados.DataInicio) {
		return nil, erros.Validacao("dataFim", "a data final deve ser posterior à data inicial")
	}

	res := &Reserva{
		VeiculoID:   dados.VeiculoID,
		ClienteID:   dados.ClienteID,
		UsuarioID:   dados.UsuarioID,
		DataInicio:  dados.DataInicio,
		DataFim:     dados.DataFim,
		Status:      StatusPendente,
		Observacoes: dados.Observacoes,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Veiculos.BuscarPorIDComTrava(tx, dados.VeiculoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("veículo")
			}
			return err
		}
		if _, err := s.Clientes.BuscarPorID(tx, dados.ClienteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("cliente")
			}
			return err
		}

		conflito, err := s.Repo.ExisteConflito(tx, dados.VeiculoID, dados.DataInicio, dados.DataFim, 0)
		if err != nil {
			return err
		}
		if conflito {
			return erros.Conflito("o veículo já possui reserva para este período")
		}

		return s.Repo.Salvar(tx, res)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarCriacao(ator, auditoria.EntidadeReserva, res.ID, res.Snapshot(),
		fmt.Sprintf("Reserva criada para o veículo %d", res.VeiculoID))
	return res, nil
}

// Confirmar muda a reserva de pendente para confirmada.
func (s *Servico) Confirmar(ator auditoria.Ator, id uint) (*Reserva, error) {
	return s.transicionar(ator, id, StatusConfirmada, "confirmada")
}

// Cancelar cancela uma reserva pendente ou confirmada.
func (s *Servico) Cancelar(ator auditoria.Ator, id uint) (*Reserva, error) {
	var res *Reserva

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("reserva")
			}
			return err
		}
		if !PodeTransicionar(res.Status, StatusCancelada) {
			return erros.EstadoInvalido(fmt.Sprintf("reserva %s não pode ser cancelada", res.Status))
		}
		res.Status = StatusCancelada
		return s.Repo.Atualizar(tx, res)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarCancelamento(ator, auditoria.EntidadeReserva, res.ID,
		fmt.Sprintf("Reserva %d cancelada", res.ID))
	return res, nil
}

// ConverterEmLocacao transforma uma reserva confirmada em locação ativa.
// A retirada e a conclusão da reserva acontecem na mesma transação: ou
// ambas valem, ou nenhuma.
func (s *Servico) ConverterEmLocacao(ator auditoria.Ator, id uint, dados DadosConversao) (*locacao.Locacao, error) {
	var res *Reserva
	var l *locacao.Locacao
	var antes auditoria.Snapshot

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("reserva")
			}
			return err
		}
		antes = res.Snapshot()

		if res.Status != StatusConfirmada {
			return erros.EstadoInvalido(fmt.Sprintf("apenas reservas confirmadas podem virar locação (status atual: %s)", res.Status))
		}

		reservaID := res.ID
		devolucaoPrevista := res.DataFim
		l, err = s.Locacoes.IniciarTx(tx, locacao.EntradaInicio{
			ReservaID:             &reservaID,
			VeiculoID:             res.VeiculoID,
			ClienteID:             res.ClienteID,
			UsuarioID:             ator.UsuarioID,
			DataRetirada:          dados.DataRetirada,
			DataDevolucaoPrevista: &devolucaoPrevista,
			OdometroRetirada:      dados.OdometroRetirada,
			EstadoRetirada:        dados.EstadoRetirada,
			KmPermitidoPorDia:     dados.KmPermitidoPorDia,
			ValorKmExtra:          dados.ValorKmExtra,
			Observacoes:           dados.Observacoes,
		})
		if err != nil {
			return err
		}

		res.Status = StatusConcluida
		return s.Repo.Atualizar(tx, res)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarAtualizacao(ator, auditoria.EntidadeReserva, res.ID, antes, res.Snapshot(),
		fmt.Sprintf("Reserva %d convertida em locação %d", res.ID, l.ID))
	s.Auditoria.RegistrarCriacao(ator, auditoria.EntidadeLocacao, l.ID, l.Snapshot(),
		fmt.Sprintf("Locação iniciada a partir da reserva %d", res.ID))
	return l, nil
}

// BuscarPorID retorna uma reserva.
func (s *Servico) BuscarPorID(id uint) (*Reserva, error) {
	res, err := s.Repo.BuscarPorID(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("reserva")
		}
		return nil, err
	}
	return res, nil
}

// ListarPorVeiculo retorna as reservas de um veículo.
func (s *Servico) ListarPorVeiculo(veiculoID uint) ([]Reserva, error) {
	return s.Repo.ListarPorVeiculo(s.DB, veiculoID)
}

// ListarPorCliente retorna as reservas de um cliente.
func (s *Servico) ListarPorCliente(clienteID uint) ([]Reserva, error) {
	return s.Repo.ListarPorCliente(s.DB, clienteID)
}

func (s *Servico) transicionar(ator auditoria.Ator, id uint, para, rotulo string) (*Reserva, error) {
	var res *Reserva
	var antes auditoria.Snapshot

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("reserva")
			}
			return err
		}
		antes = res.Snapshot()
		if !PodeTransicionar(res.Status, para) {
			return erros.EstadoInvalido(fmt.Sprintf("reserva %s não pode ser %s", res.Status, rotulo))
		}
		res.Status = para
		return s.Repo.Atualizar(tx, res)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarAtualizacao(ator, auditoria.EntidadeReserva, res.ID, antes, res.Snapshot(),
		fmt.Sprintf("Reserva %d %s", res.ID, rotulo))
	return res, nil
}
