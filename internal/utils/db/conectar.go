package db

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Conectar abre a conexão Postgres a partir das variáveis de ambiente.
func Conectar() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}
	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432
	}
	usuario := os.Getenv("DB_USERNAME")
	senha := os.Getenv("DB_PASSWORD")
	nome := os.Getenv("DB_NAME")

	var sslMode string
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		host, usuario, senha, nome, port, sslMode)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}
