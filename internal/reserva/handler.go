package reserva

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

type criarReservaRequest struct {
	VeiculoID   uint      `json:"veiculoId"`
	ClienteID   uint      `json:"clienteId"`
	DataInicio  time.Time `json:"dataInicio"`
	DataFim     time.Time `json:"dataFim"`
	Observacoes string    `json:"observacoes"`
}

type converterReservaRequest struct {
	DataRetirada      *time.Time      `json:"dataRetirada"`
	OdometroRetirada  int             `json:"odometroRetirada"`
	EstadoRetirada    string          `json:"estadoRetirada"`
	KmPermitidoPorDia int             `json:"kmPermitidoPorDia"`
	ValorKmExtra      decimal.Decimal `json:"valorKmExtra"`
	Observacoes       string          `json:"observacoes"`
}

// Handler expõe as rotas de reservas.
type Handler struct {
	Servico *Servico
}

// NewHandler retorna um handler inicializado.
func NewHandler(servico *Servico) *Handler {
	return &Handler{Servico: servico}
}

// CriarReserva registra uma nova reserva pendente.
func (h *Handler) CriarReserva(w http.ResponseWriter, r *http.Request) {
	var req criarReservaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	ator := atorDaRequisicao(r)
	res, err := h.Servico.Criar(ator, DadosReserva{
		VeiculoID:   req.VeiculoID,
		ClienteID:   req.ClienteID,
		UsuarioID:   ator.UsuarioID,
		DataInicio:  req.DataInicio,
		DataFim:     req.DataFim,
		Observacoes: req.Observacoes,
	})
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

// ConfirmarReserva muda a reserva para confirmada.
func (h *Handler) ConfirmarReserva(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	res, err := h.Servico.Confirmar(atorDaRequisicao(r), uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// CancelarReserva cancela uma reserva pendente ou confirmada.
func (h *Handler) CancelarReserva(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	res, err := h.Servico.Cancelar(atorDaRequisicao(r), uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// ConverterEmLocacao transforma a reserva confirmada em locação.
func (h *Handler) ConverterEmLocacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req converterReservaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	dados := DadosConversao{
		OdometroRetirada:  req.OdometroRetirada,
		EstadoRetirada:    req.EstadoRetirada,
		KmPermitidoPorDia: req.KmPermitidoPorDia,
		ValorKmExtra:      req.ValorKmExtra,
		Observacoes:       req.Observacoes,
	}
	if req.DataRetirada != nil {
		dados.DataRetirada = *req.DataRetirada
	}

	l, err := h.Servico.ConverterEmLocacao(atorDaRequisicao(r), uint(id), dados)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(l)
}

// BuscarPorID retorna uma reserva pelo ID.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	res, err := h.Servico.BuscarPorID(uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// ListarPorVeiculo retorna as reservas de um veículo.
func (h *Handler) ListarPorVeiculo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	reservas, err := h.Servico.ListarPorVeiculo(uint(id))
	if err != nil {
		http.Error(w, "erro ao listar reservas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reservas)
}

// ListarPorCliente retorna as reservas de um cliente.
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	reservas, err := h.Servico.ListarPorCliente(uint(id))
	if err != nil {
		http.Error(w, "erro ao listar reservas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reservas)
}

func atorDaRequisicao(r *http.Request) auditoria.Ator {
	return auditoria.Ator{
		UsuarioID: auth.UsuarioDaRequisicao(r),
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
