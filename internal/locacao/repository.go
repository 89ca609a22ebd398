package locacao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Locacao.
type Repository struct{}

// NewRepository cria um novo repositório de locações.
func NewRepository() *Repository {
	return &Repository{}
}

// Salvar insere uma nova locação.
func (r *Repository) Salvar(db *gorm.DB, l *Locacao) error {
	return db.Create(l).Error
}

// Atualizar grava todos os campos de uma locação existente.
func (r *Repository) Atualizar(db *gorm.DB, l *Locacao) error {
	return db.Save(l).Error
}

// BuscarPorID retorna uma locação pelo ID.
func (r *Repository) BuscarPorID(db *gorm.DB, id uint) (*Locacao, error) {
	var l Locacao
	if err := db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// BuscarPorIDComTrava retorna a locação com trava de linha. Só deve ser
// chamada dentro de transação.
func (r *Repository) BuscarPorIDComTrava(tx *gorm.DB, id uint) (*Locacao, error) {
	var l Locacao
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListarAtivas retorna as locações em andamento, mais antigas primeiro.
func (r *Repository) ListarAtivas(db *gorm.DB) ([]Locacao, error) {
	var locacoes []Locacao
	err := db.Where("status = ?", StatusAtiva).
		Order("data_retirada asc").
		Find(&locacoes).Error
	return locacoes, err
}

// ListarPorCliente retorna o histórico de locações de um cliente.
func (r *Repository) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Locacao, error) {
	var locacoes []Locacao
	err := db.Where("cliente_id = ?", clienteID).
		Order("data_retirada desc").
		Find(&locacoes).Error
	return locacoes, err
}

// ListarPorVeiculo retorna o histórico de locações de um veículo.
func (r *Repository) ListarPorVeiculo(db *gorm.DB, veiculoID uint) ([]Locacao, error) {
	var locacoes []Locacao
	err := db.Where("veiculo_id = ?", veiculoID).
		Order("data_retirada desc").
		Find(&locacoes).Error
	return locacoes, err
}

// ExisteManutencaoAberta verifica se o veículo tem manutenção agendada ou
// em andamento que impeça a volta ao status disponível.
func (r *Repository) ExisteManutencaoAberta(db *gorm.DB, veiculoID uint) (bool, error) {
	var total int64
	err := db.Table("manutencoes").
		Where("veiculo_id = ? AND status IN ?", veiculoID, []string{"scheduled", "in_progress"}).
		Count(&total).Error
	return total > 0, err
}
