package cliente

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/auth"
	"github.com/locadora-bm/api-locadora/internal/erros"
)

type clienteRequest struct {
	Nome        string `json:"nome"`
	CPF         string `json:"cpf"`
	CNH         string `json:"cnh"`
	Telefone    string `json:"telefone"`
	Endereco    string `json:"endereco"`
	Email       string `json:"email"`
	Observacoes string `json:"observacoes"`
}

type atualizarClienteRequest struct {
	Nome        *string `json:"nome"`
	CPF         *string `json:"cpf"`
	CNH         *string `json:"cnh"`
	Telefone    *string `json:"telefone"`
	Endereco    *string `json:"endereco"`
	Email       *string `json:"email"`
	Observacoes *string `json:"observacoes"`
}

type listagemResponse struct {
	Clientes []Cliente `json:"clientes"`
	Total    int64     `json:"total"`
}

// Handler expõe as rotas de clientes.
type Handler struct {
	Servico *Servico
}

// NewHandler retorna um handler inicializado.
func NewHandler(servico *Servico) *Handler {
	return &Handler{Servico: servico}
}

// CriarCliente cadastra um novo cliente.
func (h *Handler) CriarCliente(w http.ResponseWriter, r *http.Request) {
	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Servico.Criar(atorDaRequisicao(r), DadosCliente{
		Nome:        req.Nome,
		CPF:         req.CPF,
		CNH:         req.CNH,
		Telefone:    req.Telefone,
		Endereco:    req.Endereco,
		Email:       req.Email,
		Observacoes: req.Observacoes,
	})
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// ListarClientes retorna clientes paginados.
func (h *Handler) ListarClientes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limite, _ := strconv.Atoi(q.Get("limite"))
	pagina := 0
	if n, err := strconv.Atoi(q.Get("pagina")); err == nil && n > 0 {
		pagina = n - 1
	}

	clientes, total, err := h.Servico.Listar(q.Get("busca"), limite, pagina)
	if err != nil {
		http.Error(w, "erro ao listar clientes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listagemResponse{Clientes: clientes, Total: total})
}

// BuscarPorID retorna um cliente pelo ID.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Servico.BuscarPorID(uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// AtualizarCliente aplica alterações parciais a um cliente.
func (h *Handler) AtualizarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atualizarClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Servico.Atualizar(atorDaRequisicao(r), uint(id), AtualizacaoCliente{
		Nome:        req.Nome,
		CPF:         req.CPF,
		CNH:         req.CNH,
		Telefone:    req.Telefone,
		Endereco:    req.Endereco,
		Email:       req.Email,
		Observacoes: req.Observacoes,
	})
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// InativarCliente aplica soft delete ao cliente.
func (h *Handler) InativarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Servico.Inativar(atorDaRequisicao(r), uint(id)); err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"mensagem": "cliente inativado com sucesso"})
}

func atorDaRequisicao(r *http.Request) auditoria.Ator {
	return auditoria.Ator{
		UsuarioID: auth.UsuarioDaRequisicao(r),
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
