// internal/veiculo/repository.go
package veiculo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FiltroListagem define busca, filtros e ordenação da listagem.
type FiltroListagem struct {
	Busca     string // modelo, marca ou placa
	Status    string
	Categoria string
	OrdenarPor string
	Ordem      string // asc | desc
	Limite     int
	Pagina     int
}

// Repository encapsula operações de banco para Veiculo.
type Repository struct{}

// NewRepository cria um novo repositório de veículos.
func NewRepository() *Repository {
	return &Repository{}
}

// Salvar insere um novo veículo.
func (r *Repository) Salvar(db *gorm.DB, v *Veiculo) error {
	return db.Create(v).Error
}

// Atualizar grava todos os campos de um veículo existente.
func (r *Repository) Atualizar(db *gorm.DB, v *Veiculo) error {
	return db.Save(v).Error
}

// BuscarPorID retorna um veículo não inativado pelo ID.
func (r *Repository) BuscarPorID(db *gorm.DB, id uint) (*Veiculo, error) {
	var v Veiculo
	if err := db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// BuscarPorIDComTrava retorna o veículo com trava de linha (SELECT ...
// FOR UPDATE). Serializa a seção crítica de transição de status por
// veículo; só deve ser chamada dentro de transação.
func (r *Repository) BuscarPorIDComTrava(tx *gorm.DB, id uint) (*Veiculo, error) {
	var v Veiculo
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// PlacaExiste verifica se a placa normalizada já pertence a outro veículo
// não inativado. excluirID ignora o próprio registro em atualizações.
func (r *Repository) PlacaExiste(db *gorm.DB, placa string, excluirID uint) (bool, error) {
	q := db.Model(&Veiculo{}).Where("placa = ?", placa)
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// TemReservaAtiva verifica se existe reserva pendente ou confirmada para
// o veículo.
func (r *Repository) TemReservaAtiva(db *gorm.DB, veiculoID uint) (bool, error) {
	var total int64
	err := db.Table("reservas").
		Where("veiculo_id = ? AND status IN ?", veiculoID, []string{"pending", "confirmed"}).
		Count(&total).Error
	return total > 0, err
}

// TemLocacaoAtiva verifica se existe locação ativa para o veículo.
func (r *Repository) TemLocacaoAtiva(db *gorm.DB, veiculoID uint) (bool, error) {
	var total int64
	err := db.Table("locacoes").
		Where("veiculo_id = ? AND status = ?", veiculoID, "active").
		Count(&total).Error
	return total > 0, err
}

// Inativar aplica soft delete no veículo.
func (r *Repository) Inativar(db *gorm.DB, v *Veiculo) error {
	return db.Delete(v).Error
}

// Listar retorna veículos paginados com busca e filtros.
func (r *Repository) Listar(db *gorm.DB, f FiltroListagem) ([]Veiculo, int64, error) {
	q := db.Model(&Veiculo{})

	if f.Busca != "" {
		busca := "%" + f.Busca + "%"
		q = q.Where("modelo ILIKE ? OR marca ILIKE ? OR placa ILIKE ?", busca, busca, busca)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Categoria != "" {
		q = q.Where("categoria = ?", f.Categoria)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ordenarPor := f.OrdenarPor
	switch ordenarPor {
	case "modelo", "marca", "ano", "placa", "valor_diaria", "quilometragem", "created_at":
		// coluna permitida
	default:
		ordenarPor = "created_at"
	}
	ordem := "desc"
	if f.Ordem == "asc" {
		ordem = "asc"
	}

	limite := f.Limite
	if limite <= 0 {
		limite = 15
	}
	pagina := f.Pagina
	if pagina < 0 {
		pagina = 0
	}

	var veiculos []Veiculo
	err := q.Order(ordenarPor + " " + ordem).
		Limit(limite).
		Offset(pagina * limite).
		Find(&veiculos).Error
	return veiculos, total, err
}
