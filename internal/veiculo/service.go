package veiculo

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/erros"
)

// DadosVeiculo é a entrada do cadastro de veículo.
type DadosVeiculo struct {
	Modelo        string
	Marca         string
	Ano           int
	Cor           string
	Placa         string
	Quilometragem int
	Categoria     string
	Seguro        *Seguro
	ValorDiaria   decimal.Decimal
	Observacoes   string
}

// AtualizacaoVeiculo é a entrada parcial da atualização: só os campos
// não-nulos são aplicados. Status fica de fora de propósito — ele é
// mantido pelas operações de reserva, locação e manutenção.
type AtualizacaoVeiculo struct {
	Modelo        *string
	Marca         *string
	Ano           *int
	Cor           *string
	Placa         *string
	Quilometragem *int
	Categoria     *string
	Seguro        *Seguro
	ValorDiaria   *decimal.Decimal
	Observacoes   *string
}

// Servico implementa o registro de veículos: cadastro, atualização,
// inativação e verificação de placa.
type Servico struct {
	DB        *gorm.DB
	Repo      *Repository
	Auditoria *auditoria.Servico
	Log       *zap.SugaredLogger
}

// NovoServico cria o serviço de veículos.
func NovoServico(db *gorm.DB, aud *auditoria.Servico, log *zap.SugaredLogger) *Servico {
	return &Servico{DB: db, Repo: NewRepository(), Auditoria: aud, Log: log}
}

// Registrar cadastra um novo veículo com status disponível.
func (s *Servico) Registrar(ator auditoria.Ator, dados DadosVeiculo) (*Veiculo, error) {
	if err := validarDados(&dados); err != nil {
		return nil, err
	}

	v := &Veiculo{
		Modelo:        dados.Modelo,
		Marca:         dados.Marca,
		Ano:           dados.Ano,
		Cor:           dados.Cor,
		Placa:         NormalizarPlaca(dados.Placa),
		Quilometragem: dados.Quilometragem,
		Categoria:     dados.Categoria,
		Status:        StatusDisponivel,
		Seguro:        dados.Seguro,
		ValorDiaria:   dados.ValorDiaria,
		Observacoes:   dados.Observacoes,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existe, err := s.Repo.PlacaExiste(tx, v.Placa, 0)
		if err != nil {
			return err
		}
		if existe {
			return erros.Conflito("esta placa já está cadastrada")
		}
		return s.Repo.Salvar(tx, v)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarCriacao(ator, auditoria.EntidadeVeiculo, v.ID, v.Snapshot(),
		fmt.Sprintf("Veículo %s (Placa: %s) criado", v.NomeCompleto(), v.Placa))
	return v, nil
}

// Atualizar aplica alterações parciais a um veículo existente.
func (s *Servico) Atualizar(ator auditoria.Ator, id uint, dados AtualizacaoVeiculo) (*Veiculo, error) {
	var v *Veiculo
	var antes auditoria.Snapshot

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		v, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("veículo")
			}
			return err
		}
		antes = v.Snapshot()

		if dados.Placa != nil {
			placa := NormalizarPlaca(*dados.Placa)
			if !PlacaValida(placa) {
				return erros.Validacao("placa", "a placa deve estar no formato ABC1234, ABC-1234 ou ABC1D23 (Mercosul)")
			}
			existe, err := s.Repo.PlacaExiste(tx, placa, v.ID)
			if err != nil {
				return err
			}
			if existe {
				return erros.Conflito("esta placa já está cadastrada")
			}
			v.Placa = placa
		}
		if dados.Modelo != nil {
			v.Modelo = *dados.Modelo
		}
		if dados.Marca != nil {
			v.Marca = *dados.Marca
		}
		if dados.Ano != nil {
			if err := validarAno(*dados.Ano); err != nil {
				return err
			}
			v.Ano = *dados.Ano
		}
		if dados.Cor != nil {
			v.Cor = *dados.Cor
		}
		if dados.Quilometragem != nil {
			// O odômetro nunca anda para trás.
			if *dados.Quilometragem < v.Quilometragem {
				return erros.Validacao("quilometragem", "a quilometragem não pode ser reduzida")
			}
			v.Quilometragem = *dados.Quilometragem
		}
		if dados.Categoria != nil {
			if !CategoriaValida(*dados.Categoria) {
				return erros.Validacao("categoria", "categoria desconhecida")
			}
			v.Categoria = *dados.Categoria
		}
		if dados.Seguro != nil {
			if dados.Seguro.Nome == "" {
				return erros.Validacao("seguro", "o nome da seguradora é obrigatório")
			}
			v.Seguro = dados.Seguro
		}
		if dados.ValorDiaria != nil {
			if dados.ValorDiaria.IsNegative() {
				return erros.Validacao("valorDiaria", "o valor da diária deve ser maior ou igual a zero")
			}
			v.ValorDiaria = *dados.ValorDiaria
		}
		if dados.Observacoes != nil {
			v.Observacoes = *dados.Observacoes
		}

		return s.Repo.Atualizar(tx, v)
	})
	if err != nil {
		return nil, err
	}

	s.Auditoria.RegistrarAtualizacao(ator, auditoria.EntidadeVeiculo, v.ID, antes, v.Snapshot(),
		fmt.Sprintf("Veículo %s (Placa: %s) atualizado", v.NomeCompleto(), v.Placa))
	return v, nil
}

// Inativar aplica soft delete. Recusado enquanto o veículo estiver locado
// ou tiver reservas pendentes/confirmadas.
func (s *Servico) Inativar(ator auditoria.Ator, id uint) error {
	var v *Veiculo

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		v, err = s.Repo.BuscarPorIDComTrava(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return erros.NaoEncontrado("veículo")
			}
			return err
		}

		if v.EstaLocado() {
			return erros.Conflito("não é possível inativar um veículo que está locado")
		}
		locado, err := s.Repo.TemLocacaoAtiva(tx, v.ID)
		if err != nil {
			return err
		}
		if locado {
			return erros.Conflito("não é possível inativar um veículo com locação ativa")
		}
		reservado, err := s.Repo.TemReservaAtiva(tx, v.ID)
		if err != nil {
			return err
		}
		if reservado {
			return erros.Conflito("não é possível inativar um veículo com reservas ativas")
		}

		return s.Repo.Inativar(tx, v)
	})
	if err != nil {
		return err
	}

	s.Auditoria.RegistrarExclusao(ator, auditoria.EntidadeVeiculo, v.ID, v.Snapshot(),
		fmt.Sprintf("Veículo %s (Placa: %s) inativado", v.NomeCompleto(), v.Placa))
	return nil
}

// VerificarPlaca é uma leitura pura para validação pré-submit: normaliza
// a placa e responde se está livre, com mensagem amigável. Não altera
// estado nem segura travas.
func (s *Servico) VerificarPlaca(placa string, excluirID uint) (bool, string, error) {
	normalizada := NormalizarPlaca(placa)
	if !PlacaValida(normalizada) {
		return false, "A placa deve estar no formato ABC1234, ABC-1234 ou ABC1D23 (Mercosul).", nil
	}
	existe, err := s.Repo.PlacaExiste(s.DB, normalizada, excluirID)
	if err != nil {
		return false, "", err
	}
	if existe {
		return false, "Esta placa já está cadastrada", nil
	}
	return true, "Placa disponível", nil
}

// BuscarPorID retorna um veículo não inativado.
func (s *Servico) BuscarPorID(id uint) (*Veiculo, error) {
	v, err := s.Repo.BuscarPorID(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("veículo")
		}
		return nil, err
	}
	return v, nil
}

// Listar retorna veículos paginados com busca e filtros.
func (s *Servico) Listar(f FiltroListagem) ([]Veiculo, int64, error) {
	return s.Repo.Listar(s.DB, f)
}

func validarDados(dados *DadosVeiculo) error {
	if dados.Modelo == "" {
		return erros.Validacao("modelo", "o modelo é obrigatório")
	}
	if dados.Marca == "" {
		return erros.Validacao("marca", "a marca é obrigatória")
	}
	if err := validarAno(dados.Ano); err != nil {
		return err
	}
	if !PlacaValida(dados.Placa) {
		return erros.Validacao("placa", "a placa deve estar no formato ABC1234, ABC-1234 ou ABC1D23 (Mercosul)")
	}
	if dados.Quilometragem < 0 {
		return erros.Validacao("quilometragem", "a quilometragem deve ser maior ou igual a zero")
	}
	if !CategoriaValida(dados.Categoria) {
		return erros.Validacao("categoria", "categoria desconhecida")
	}
	if dados.Seguro != nil && dados.Seguro.Nome == "" {
		return erros.Validacao("seguro", "o nome da seguradora é obrigatório")
	}
	if dados.ValorDiaria.IsNegative() {
		return erros.Validacao("valorDiaria", "o valor da diária deve ser maior ou igual a zero")
	}
	return nil
}

func validarAno(ano int) error {
	if ano < 1900 || ano > time.Now().Year()+1 {
		return erros.Validacao("ano", "o ano deve ser válido")
	}
	return nil
}
