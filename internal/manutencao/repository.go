package manutencao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Salvar(db *gorm.DB, m *Manutencao) error {
	return db.Create(m).Error
}

func (r *Repository) Atualizar(db *gorm.DB, m *Manutencao) error {
	return db.Save(m).Error
}

func (r *Repository) BuscarPorID(db *gorm.DB, id uint) (*Manutencao, error) {
	var m Manutencao
	if err := db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// BuscarPorIDComTrava carrega a manutenção com FOR UPDATE dentro da
// transação informada.
func (r *Repository) BuscarPorIDComTrava(tx *gorm.DB, id uint) (*Manutencao, error) {
	var m Manutencao
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ExisteOutraAberta informa se o veículo tem outra manutenção agendada ou
// em andamento além da indicada por excluirID.
func (r *Repository) ExisteOutraAberta(tx *gorm.DB, veiculoID, excluirID uint) (bool, error) {
	var total int64
	consulta := tx.Model(&Manutencao{}).
		Where("veiculo_id = ? AND status IN ?", veiculoID, []string{StatusAgendada, StatusEmAndamento})
	if excluirID != 0 {
		consulta = consulta.Where("id <> ?", excluirID)
	}
	if err := consulta.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *Repository) ListarPendentes(db *gorm.DB) ([]Manutencao, error) {
	var manutencoes []Manutencao
	err := db.Where("status IN ?", []string{StatusAgendada, StatusEmAndamento}).
		Order("data_agendada ASC").
		Find(&manutencoes).Error
	return manutencoes, err
}

func (r *Repository) ListarPorVeiculo(db *gorm.DB, veiculoID uint) ([]Manutencao, error) {
	var manutencoes []Manutencao
	err := db.Where("veiculo_id = ?", veiculoID).
		Order("data_agendada DESC").
		Find(&manutencoes).Error
	return manutencoes, err
}
