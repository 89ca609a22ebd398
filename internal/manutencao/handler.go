package manutencao

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/auth"
	"github.com/locadora-bm/api-locadora/internal/erros"
)

type agendarManutencaoRequest struct {
	VeiculoID    uint      `json:"veiculoId"`
	Tipo         string    `json:"tipo"`
	DataAgendada time.Time `json:"dataAgendada"`
	Prestador    string    `json:"prestador"`
	Descricao    string    `json:"descricao"`
	Observacoes  string    `json:"observacoes"`
}

type concluirManutencaoRequest struct {
	Custo         decimal.Decimal `json:"custo"`
	DataConclusao *time.Time      `json:"dataConclusao"`
	Observacoes   string          `json:"observacoes"`
}

// Handler expõe as rotas de manutenções.
type Handler struct {
	Servico *Servico
}

// NewHandler retorna um handler inicializado.
func NewHandler(servico *Servico) *Handler {
	return &Handler{Servico: servico}
}

// AgendarManutencao cria uma manutenção para um veículo.
func (h *Handler) AgendarManutencao(w http.ResponseWriter, r *http.Request) {
	var req agendarManutencaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	ator := atorDaRequisicao(r)
	m, err := h.Servico.Agendar(ator, DadosAgendamento{
		VeiculoID:    req.VeiculoID,
		UsuarioID:    ator.UsuarioID,
		Tipo:         req.Tipo,
		DataAgendada: req.DataAgendada,
		Prestador:    req.Prestador,
		Descricao:    req.Descricao,
		Observacoes:  req.Observacoes,
	})
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// IniciarManutencao move a manutenção para em andamento.
func (h *Handler) IniciarManutencao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	m, err := h.Servico.IniciarExecucao(atorDaRequisicao(r), uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// ConcluirManutencao fecha a manutenção com o custo final.
func (h *Handler) ConcluirManutencao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req concluirManutencaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	dados := DadosConclusao{
		Custo:       req.Custo,
		Observacoes: req.Observacoes,
	}
	if req.DataConclusao != nil {
		dados.DataConclusao = *req.DataConclusao
	}

	m, err := h.Servico.Concluir(atorDaRequisicao(r), uint(id), dados)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// CancelarManutencao aborta uma manutenção aberta.
func (h *Handler) CancelarManutencao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Servico.Cancelar(atorDaRequisicao(r), uint(id)); err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"mensagem": "manutenção cancelada com sucesso"})
}

// BuscarPorID retorna uma manutenção pelo ID.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	m, err := h.Servico.BuscarPorID(uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// ListarPendentes retorna as manutenções agendadas ou em andamento.
func (h *Handler) ListarPendentes(w http.ResponseWriter, r *http.Request) {
	manutencoes, err := h.Servico.ListarPendentes()
	if err != nil {
		http.Error(w, "erro ao listar manutenções", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(manutencoes)
}

// ListarPorVeiculo retorna o histórico de manutenções de um veículo.
func (h *Handler) ListarPorVeiculo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	manutencoes, err := h.Servico.ListarPorVeiculo(uint(id))
	if err != nil {
		http.Error(w, "erro ao listar manutenções", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(manutencoes)
}

func atorDaRequisicao(r *http.Request) auditoria.Ator {
	return auditoria.Ator{
		UsuarioID: auth.UsuarioDaRequisicao(r),
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
