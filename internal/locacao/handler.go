package locacao

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

type iniciarLocacaoRequest struct {
	VeiculoID             uint            `json:"veiculoId"`
	ClienteID             uint            `json:"clienteId"`
	DataRetirada          *time.Time      `json:"dataRetirada"`
	DataDevolucaoPrevista *time.Time      `json:"dataDevolucaoPrevista"`
	OdometroRetirada      int             `json:"odometroRetirada"`
	EstadoRetirada        string          `json:"estadoRetirada"`
	KmPermitidoPorDia     int             `json:"kmPermitidoPorDia"`
	ValorDiaria           decimal.Decimal `json:"valorDiaria"`
	ValorKmExtra          decimal.Decimal `json:"valorKmExtra"`
	Observacoes           string          `json:"observacoes"`
}

type devolucaoRequest struct {
	OdometroDevolucao int             `json:"odometroDevolucao"`
	DataDevolucao     *time.Time      `json:"dataDevolucao"`
	EstadoDevolucao   string          `json:"estadoDevolucao"`
	Multas            decimal.Decimal `json:"multas"`
}

// Handler expõe as rotas de locações.
type Handler struct {
	Servico *Servico
}

// NewHandler retorna um handler inicializado.
func NewHandler(servico *Servico) *Handler {
	return &Handler{Servico: servico}
}

// IniciarLocacao abre uma locação direta (walk-in).
func (h *Handler) IniciarLocacao(w http.ResponseWriter, r *http.Request) {
	var req iniciarLocacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	ator := atorDaRequisicao(r)
	entrada := EntradaInicio{
		VeiculoID:             req.VeiculoID,
		ClienteID:             req.ClienteID,
		UsuarioID:             ator.UsuarioID,
		DataDevolucaoPrevista: req.DataDevolucaoPrevista,
		OdometroRetirada:      req.OdometroRetirada,
		EstadoRetirada:        req.EstadoRetirada,
		KmPermitidoPorDia:     req.KmPermitidoPorDia,
		ValorDiaria:           req.ValorDiaria,
		ValorKmExtra:          req.ValorKmExtra,
		Observacoes:           req.Observacoes,
	}
	if req.DataRetirada != nil {
		entrada.DataRetirada = *req.DataRetirada
	}

	l, err := h.Servico.Iniciar(ator, entrada)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(l)
}

// FinalizarLocacao registra a devolução e calcula a cobrança.
func (h *Handler) FinalizarLocacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req devolucaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	entrada := EntradaDevolucao{
		OdometroDevolucao: req.OdometroDevolucao,
		EstadoDevolucao:   req.EstadoDevolucao,
		Multas:            req.Multas,
	}
	if req.DataDevolucao != nil {
		entrada.DataDevolucao = *req.DataDevolucao
	}

	l, err := h.Servico.Finalizar(atorDaRequisicao(r), uint(id), entrada)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

// CancelarLocacao encerra uma locação ativa sem cobrança.
func (h *Handler) CancelarLocacao(w http.ResponseWriter, r *http.Request) {
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
	json.NewEncoder(w).Encode(map[string]string{"mensagem": "locação cancelada com sucesso"})
}

// BuscarPorID retorna uma locação pelo ID.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	l, err := h.Servico.BuscarPorID(uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

// ListarAtivas retorna as locações em andamento.
func (h *Handler) ListarAtivas(w http.ResponseWriter, r *http.Request) {
	locacoes, err := h.Servico.ListarAtivas()
	if err != nil {
		http.Error(w, "erro ao listar locações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locacoes)
}

// ListarPorCliente retorna o histórico de locações de um cliente.
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	locacoes, err := h.Servico.ListarPorCliente(uint(id))
	if err != nil {
		http.Error(w, "erro ao listar locações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locacoes)
}

// ListarPorVeiculo retorna o histórico de locações de um veículo.
func (h *Handler) ListarPorVeiculo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	locacoes, err := h.Servico.ListarPorVeiculo(uint(id))
	if err != nil {
		http.Error(w, "erro ao listar locações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locacoes)
}

func atorDaRequisicao(r *http.Request) auditoria.Ator {
	return auditoria.Ator{
		UsuarioID: auth.UsuarioDaRequisicao(r),
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
