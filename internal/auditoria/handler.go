package auditoria

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

// Handler expõe a consulta da trilha de auditoria.
type Handler struct {
	DB *gorm.DB
}

// NovoHandler cria o handler de auditoria.
func NovoHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Listar retorna registros de auditoria, com filtros opcionais por
// entidade, ID da entidade, ação e usuário.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Model(&LogAuditoria{})

	if entidade := r.URL.Query().Get("entidade"); entidade != "" {
		q = q.Where("entidade = ?", entidade)
	}
	if acao := r.URL.Query().Get("acao"); acao != "" {
		q = q.Where("acao = ?", acao)
	}
	if raw := r.URL.Query().Get("entidadeId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			q = q.Where("entidade_id = ?", id)
		}
	}
	if raw := r.URL.Query().Get("usuarioId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			q = q.Where("usuario_id = ?", id)
		}
	}

	limite := 50
	if raw := r.URL.Query().Get("limite"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limite = n
		}
	}
	pagina := 0
	if raw := r.URL.Query().Get("pagina"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pagina = n - 1
		}
	}

	var registros []LogAuditoria
	if err := q.Order("created_at desc").Limit(limite).Offset(pagina * limite).Find(&registros).Error; err != nil {
		http.Error(w, "erro ao listar auditoria", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(registros)
}
