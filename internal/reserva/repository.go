package reserva

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Reserva.
type Repository struct{}

// NewRepository cria um novo repositório de reservas.
func NewRepository() *Repository {
	return &Repository{}
}

// Salvar insere uma nova reserva.
func (r *Repository) Salvar(db *gorm.DB, res *Reserva) error {
	return db.Create(res).Error
}

// Atualizar grava todos os campos de uma reserva existente.
func (r *Repository) Atualizar(db *gorm.DB, res *Reserva) error {
	return db.Save(res).Error
}

// BuscarPorID retorna uma reserva pelo ID.
func (r *Repository) BuscarPorID(db *gorm.DB, id uint) (*Reserva, error) {
	var res Reserva
	if err := db.First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// BuscarPorIDComTrava retorna a reserva com trava de linha. Só deve ser
// chamada dentro de transação.
func (r *Repository) BuscarPorIDComTrava(tx *gorm.DB, id uint) (*Reserva, error) {
	var res Reserva
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// ExisteConflito verifica, para o mesmo veículo, se alguma reserva
// pendente ou confirmada sobrepõe o intervalo semiaberto [inicio, fim).
// Deve rodar na mesma transação que insere a reserva, com a linha do
// veículo travada.
func (r *Repository) ExisteConflito(tx *gorm.DB, veiculoID uint, inicio, fim time.Time, excluirID uint) (bool, error) {
	q := tx.Model(&Reserva{}).
		Where("veiculo_id = ?", veiculoID).
		Where("status IN ?", []string{StatusPendente, StatusConfirmada}).
		Where("data_inicio < ? AND ? < data_fim", fim, inicio)
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// ListarPorVeiculo retorna as reservas de um veículo, mais recentes
// primeiro.
func (r *Repository) ListarPorVeiculo(db *gorm.DB, veiculoID uint) ([]Reserva, error) {
	var reservas []Reserva
	err := db.Where("veiculo_id = ?", veiculoID).
		Order("data_inicio desc").
		Find(&reservas).Error
	return reservas, err
}

// ListarPorCliente retorna as reservas de um cliente, mais recentes
// primeiro.
func (r *Repository) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Reserva, error) {
	var reservas []Reserva
	err := db.Where("cliente_id = ?", clienteID).
		Order("data_inicio desc").
		Find(&reservas).Error
	return reservas, err
}
