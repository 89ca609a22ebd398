package locacao

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
	"github.com/locadora-bm/api-locadora/internal/veiculo"
)

// EntradaInicio é a entrada da retirada (início da locação).
type EntradaInicio struct {
	ReservaID *uint
	VeiculoID uint
	ClienteID uint
	UsuarioID uint // funcionário que opera a retirada

	DataRetirada          time.Time
	DataDevolucaoPrevista *time.Time
	OdometroRetirada      int
	EstadoRetirada        string

	KmPermitidoPorDia int             // 0 usa a franquia padrão
	ValorDiaria       decimal.Decimal // zero copia a diária do veículo
	ValorKmExtra      decimal.Decimal
	Observacoes       string
}

// EntradaDevolucao é a entrada da devolução (fechamento da locação).
type EntradaDevolucao struct {
	OdometroDevolucao int
	DataDevolucao     time.Time
	EstadoDevolucao   string
	Multas            decimal.Decimal // danos e outras multas adicionais
}

// Servico implementa o motor de locação: retirada, devolução com cálculo
// de cobrança e cancelamento, dirigindo as transições de status do
// veículo.
type Servico struct {
	DB        *gorm.DB
	Repo      *Repository
	Veiculos  *veiculo.Repository
	Clientes  *cliente.Repository
	Auditoria *auditoria.Servico
	Log       *zap.SugaredLogger
}

// NovoServico cria o motor de locação.
func NovoServico(db *gorm.DB, aud *auditoria.Servico, log *zap.SugaredLogger) *Servico {
	return &Servico{
		DB:        db,
		Repo:      NewRepository(),
		Veiculos:  veiculo.NewRepository(),
		Clientes:  cliente.NewRepository(),
		Auditoria: aud,
		Log:       log,
	}
}

// Iniciar abre uma locação (walk-in ou originada de reserva) em transação
// própria e registra a auditoria.
func (s *Servico) Iniciar(ator auditoria.Ator, entrada EntradaInicio) (*Locacao, error) {
	var l *Locacao
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		l, err = s.IniciarTx(tx, entrada)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarCriacao(ator, auditoria.EntidadeLocacao, l.ID, l.Snapshot(),
		fmt.Sprintf("Locação iniciada para o veículo %d", l.VeiculoID))
	return l, nil
}

// IniciarTx abre a locação dentro de uma transação já existente. A trava
// da linha do veículo serializa a checagem de disponibilidade com a
// escrita do novo status: duas retiradas concorrentes nunca enxergam
// ambas o veículo disponível. Não registra auditoria; isso é do chamador
// após o commit.
func (s *Servico) IniciarTx(tx *gorm.DB, entrada EntradaInicio) (*Locacao, error) {
	v, err := s.Veiculos.BuscarPorIDComTrava(tx, entrada.VeiculoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("veículo")
		}
		return nil, err
	}
	if !v.EstaDisponivel() {
		return nil, erros.Conflito("veículo não está disponível para locação")
	}

	if _, err := s.Clientes.BuscarPorID(tx, entrada.ClienteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("cliente")
		}
		return nil, err
	}

	if entrada.OdometroRetirada < 0 {
		return nil, erros.Validacao("odometroRetirada", "o odômetro deve ser maior ou igual a zero")
	}
	if entrada.OdometroRetirada < v.Quilometragem {
		return nil, erros.Validacao("odometroRetirada", "o odômetro não pode ser menor que a quilometragem registrada do veículo")
	}
	if entrada.ValorDiaria.IsNegative() {
		return nil, erros.Validacao("valorDiaria", "o valor da diária deve ser maior ou igual a zero")
	}
	if entrada.ValorKmExtra.IsNegative() {
		return nil, erros.Validacao("valorKmExtra", "a taxa de km extra deve ser maior ou igual a zero")
	}

	dataRetirada := entrada.DataRetirada
	if dataRetirada.IsZero() {
		dataRetirada = time.Now()
	}
	if entrada.DataDevolucaoPrevista != nil && !entrada.DataDevolucaoPrevista.After(dataRetirada) {
		return nil, erros.Validacao("dataDevolucaoPrevista", "a devolução prevista deve ser posterior à retirada")
	}

	kmPermitido := entrada.KmPermitidoPorDia
	if kmPermitido <= 0 {
		kmPermitido = KmPermitidoPadrao
	}

	// Copia a diária vigente do veículo; reajustes futuros não alcançam
	// esta locação.
	valorDiaria := entrada.ValorDiaria
	if valorDiaria.IsZero() {
		valorDiaria = v.ValorDiaria
	}

	l := &Locacao{
		ReservaID:             entrada.ReservaID,
		VeiculoID:             entrada.VeiculoID,
		ClienteID:             entrada.ClienteID,
		UsuarioID:             entrada.UsuarioID,
		DataRetirada:          dataRetirada,
		DataDevolucaoPrevista: entrada.DataDevolucaoPrevista,
		OdometroRetirada:      entrada.OdometroRetirada,
		EstadoRetirada:        entrada.EstadoRetirada,
		KmPermitidoPorDia:     kmPermitido,
		ValorDiaria:           valorDiaria,
		ValorKmExtra:          entrada.ValorKmExtra,
		Multas:                decimal.Zero,
		Status:                StatusAtiva,
		Observacoes:           entrada.Observacoes,
	}
	if err := s.Repo.Salvar(tx, l); err != nil {
		return nil, err
	}

	v.Status = veiculo.StatusLocado
	v.Quilometragem = entrada.OdometroRetirada
	if err := s.Veiculos.Atualizar(tx, v); err != nil {
		return nil, err
	}

	return l, nil
}

// Finalizar fecha a locação na devolução: valida odômetro e data, calcula
// a cobrança e devolve o veículo ao status disponível (ou manutenção, se
// houver ordem aberta).
func (s *Servico) Finalizar(ator auditoria.Ator, id uint, entrada EntradaDevolucao) (*Locacao, error) {
	var l *Locacao
	var antes auditoria.Snapshot

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		l, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("locação")
			}
			return err
		}
		antes = l.Snapshot()

		if !PodeTransicionar(l.Status, StatusConcluida) {
			return erros.EstadoInvalido(fmt.Sprintf("locação %s não pode ser finalizada", l.Status))
		}
		if entrada.OdometroDevolucao < l.OdometroRetirada {
			return erros.Validacao("odometroDevolucao", "o odômetro de devolução não pode ser menor que o de retirada")
		}
		dataDevolucao := entrada.DataDevolucao
		if dataDevolucao.IsZero() {
			dataDevolucao = time.Now()
		}
		if dataDevolucao.Before(l.DataRetirada) {
			return erros.Validacao("dataDevolucao", "a devolução não pode ser anterior à retirada")
		}
		if entrada.Multas.IsNegative() {
			return erros.Validacao("multas", "multas adicionais devem ser maiores ou iguais a zero")
		}

		v, err := s.Veiculos.BuscarPorIDComTrava(tx, l.VeiculoID)
		if err != nil {
			return err
		}

		// Ordem de cálculo: diárias, km extra, multa de atraso, subtotal,
		// total.
		l.TotalDias = CalcularTotalDias(l.DataRetirada, dataDevolucao)
		l.KmExtra = l.CalcularKmExtra(entrada.OdometroDevolucao)
		l.MultaAtraso = l.CalcularMultaAtraso(dataDevolucao)
		l.Multas = entrada.Multas
		l.Subtotal = l.CalcularSubtotal()
		l.Total = l.CalcularTotal()

		odometro := entrada.OdometroDevolucao
		l.OdometroDevolucao = &odometro
		l.DataDevolucao = &dataDevolucao
		l.EstadoDevolucao = entrada.EstadoDevolucao
		l.Status = StatusConcluida
		if err := s.Repo.Atualizar(tx, l); err != nil {
			return err
		}

		v.Quilometragem = entrada.OdometroDevolucao
		v.Status, err = s.statusPosDevolucao(tx, v.ID)
		if err != nil {
			return err
		}
		return s.Veiculos.Atualizar(tx, v)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarAtualizacao(ator, auditoria.EntidadeLocacao, l.ID, antes, l.Snapshot(),
		fmt.Sprintf("Locação %d finalizada, total %s", l.ID, l.Total.StringFixed(2)))
	return l, nil
}

// Cancelar encerra uma locação ativa sem cobrança; o veículo volta a
// ficar disponível.
func (s *Servico) Cancelar(ator auditoria.Ator, id uint) error {
	var l *Locacao

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		l, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("locação")
			}
			return err
		}
		if !PodeTransicionar(l.Status, StatusCancelada) {
			return erros.EstadoInvalido(fmt.Sprintf("locação %s não pode ser cancelada", l.Status))
		}

		v, err := s.Veiculos.BuscarPorIDComTrava(tx, l.VeiculoID)
		if err != nil {
			return err
		}

		l.Status = StatusCancelada
		if err := s.Repo.Atualizar(tx, l); err != nil {
			return err
		}

		v.Status, err = s.statusPosDevolucao(tx, v.ID)
		if err != nil {
			return err
		}
		return s.Veiculos.Atualizar(tx, v)
	})
	if err != nil {
		return err
	}

	s.Auditoria.RegistrarCancelamento(ator, auditoria.EntidadeLocacao, l.ID,
		fmt.Sprintf("Locação %d cancelada", l.ID))
	return nil
}

// BuscarPorID retorna uma locação.
func (s *Servico) BuscarPorID(id uint) (*Locacao, error) {
	l, err := s.Repo.BuscarPorID(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("locação")
		}
		return nil, err
	}
	return l, nil
}

// ListarAtivas retorna as locações em andamento.
func (s *Servico) ListarAtivas() ([]Locacao, error) {
	return s.Repo.ListarAtivas(s.DB)
}

// ListarPorCliente retorna o histórico de locações de um cliente.
func (s *Servico) ListarPorCliente(clienteID uint) ([]Locacao, error) {
	return s.Repo.ListarPorCliente(s.DB, clienteID)
}

// ListarPorVeiculo retorna o histórico de locações de um veículo.
func (s *Servico) ListarPorVeiculo(veiculoID uint) ([]Locacao, error) {
	return s.Repo.ListarPorVeiculo(s.DB, veiculoID)
}

// statusPosDevolucao decide o status do veículo após devolução ou
// cancelamento: manutenção aberta prende o veículo, senão disponível.
func (s *Servico) statusPosDevolucao(tx *gorm.DB, veiculoID uint) (string, error) {
	aberta, err := s.Repo.ExisteManutencaoAberta(tx, veiculoID)
	if err != nil {
		return "", err
	}
	if aberta {
		return veiculo.StatusManutencao, nil
	}
	return veiculo.StatusDisponivel, nil
}
