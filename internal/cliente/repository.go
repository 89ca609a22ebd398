package cliente

import "gorm.io/gorm"

// Repository encapsula operações de banco para Cliente.
type Repository struct{}

// NewRepository cria um novo repositório de clientes.
func NewRepository() *Repository {
	return &Repository{}
}

// Salvar insere um novo cliente.
func (r *Repository) Salvar(db *gorm.DB, c *Cliente) error {
	return db.Create(c).Error
}

// Atualizar grava todos os campos de um cliente existente.
func (r *Repository) Atualizar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

// BuscarPorID retorna um cliente não inativado pelo ID.
func (r *Repository) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CPFExiste verifica se o CPF normalizado já pertence a outro cliente
// não inativado.
func (r *Repository) CPFExiste(db *gorm.DB, cpf string, excluirID uint) (bool, error) {
	q := db.Model(&Cliente{}).Where("cpf = ?", cpf)
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// TemLocacaoAtiva verifica se o cliente possui locação em andamento.
func (r *Repository) TemLocacaoAtiva(db *gorm.DB, clienteID uint) (bool, error) {
	var total int64
	err := db.Table("locacoes").
		Where("cliente_id = ? AND status = ?", clienteID, "active").
		Count(&total).Error
	return total > 0, err
}

// TemReservaAtiva verifica se o cliente possui reserva pendente ou
// confirmada.
func (r *Repository) TemReservaAtiva(db *gorm.DB, clienteID uint) (bool, error) {
	var total int64
	err := db.Table("reservas").
		Where("cliente_id = ? AND status IN ?", clienteID, []string{"pending", "confirmed"}).
		Count(&total).Error
	return total > 0, err
}

// Inativar aplica soft delete no cliente.
func (r *Repository) Inativar(db *gorm.DB, c *Cliente) error {
	return db.Delete(c).Error
}

// Listar retorna clientes paginados, com busca por nome, CPF ou e-mail.
func (r *Repository) Listar(db *gorm.DB, busca string, limite, pagina int) ([]Cliente, int64, error) {
	q := db.Model(&Cliente{})
	if busca != "" {
		like := "%" + busca + "%"
		q = q.Where("nome ILIKE ? OR cpf LIKE ? OR email ILIKE ?", like, "%"+NormalizarCPF(busca)+"%", like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limite <= 0 {
		limite = 15
	}
	if pagina < 0 {
		pagina = 0
	}

	var clientes []Cliente
	err := q.Order("nome asc").Limit(limite).Offset(pagina * limite).Find(&clientes).Error
	return clientes, total, err
}
