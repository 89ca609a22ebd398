package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/auth"
	"github.com/locadora-bm/api-locadora/internal/utils"
)

// request DTOs
type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type criarUsuarioRequest struct {
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Senha   string `json:"senha"`
	IsAdmin bool   `json:"isAdmin"`
}

// Handler encapsula DB e repository.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Auditoria  *auditoria.Servico
}

// NewHandler retorna um handler inicializado.
func NewHandler(db *gorm.DB, aud *auditoria.Servico) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Auditoria:  aud,
	}
}

// Login gera um JWT para credenciais válidas.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(u.Senha, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(u.ID, u.IsAdmin)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// CriarUsuario cadastra um novo funcionário. Sem senha no payload, uma
// senha temporária é gerada e devolvida uma única vez na resposta.
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	senha := req.Senha
	var senhaTemporaria string
	if senha == "" {
		var err error
		senhaTemporaria, err = utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		senha = senhaTemporaria
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:    req.Nome,
		Email:   req.Email,
		Senha:   hash,
		IsAdmin: req.IsAdmin,
	}

	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}

	h.Auditoria.RegistrarCriacao(atorDaRequisicao(r), auditoria.EntidadeUsuario, u.ID,
		auditoria.Snapshot{"nome": u.Nome, "email": u.Email, "isAdmin": u.IsAdmin},
		"Usuário "+u.Nome+" criado")

	resposta := map[string]interface{}{"usuario": u}
	if senhaTemporaria != "" {
		resposta["senhaTemporaria"] = senhaTemporaria
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resposta)
}

// ListarUsuarios retorna todos os funcionários (somente admin).
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(usuarios)
}

// BuscarPorID retorna um funcionário pelo ID.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

func atorDaRequisicao(r *http.Request) auditoria.Ator {
	return auditoria.Ator{
		UsuarioID: auth.UsuarioDaRequisicao(r),
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
