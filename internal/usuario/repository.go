package usuario

import "gorm.io/gorm"

// Repository encapsula operações de banco para Usuario.
type Repository interface {
	Salvar(db *gorm.DB, u *Usuario) error
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	Atualizar(db *gorm.DB, u *Usuario) error
}

type repositoryImpl struct{}

// NewRepository cria um novo repositório de usuários.
func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Create(u).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Order("nome asc").Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}
