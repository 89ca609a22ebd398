package veiculo

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/auth"
	"github.com/locadora-bm/api-locadora/internal/erros"
)

type criarVeiculoRequest struct {
	Modelo        string          `json:"modelo"`
	Marca         string          `json:"marca"`
	Ano           int             `json:"ano"`
	Cor           string          `json:"cor"`
	Placa         string          `json:"placa"`
	Quilometragem int             `json:"quilometragem"`
	Categoria     string          `json:"categoria"`
	Seguro        *Seguro         `json:"seguro"`
	ValorDiaria   decimal.Decimal `json:"valorDiaria"`
	Observacoes   string          `json:"observacoes"`
}

type atualizarVeiculoRequest struct {
	Modelo        *string          `json:"modelo"`
	Marca         *string          `json:"marca"`
	Ano           *int             `json:"ano"`
	Cor           *string          `json:"cor"`
	Placa         *string          `json:"placa"`
	Quilometragem *int             `json:"quilometragem"`
	Categoria     *string          `json:"categoria"`
	Seguro        *Seguro          `json:"seguro"`
	ValorDiaria   *decimal.Decimal `json:"valorDiaria"`
	Observacoes   *string          `json:"observacoes"`
}

type listagemResponse struct {
	Veiculos []Veiculo `json:"veiculos"`
	Total    int64     `json:"total"`
}

// Handler expõe as rotas de veículos.
type Handler struct {
	Servico *Servico
}

// NewHandler retorna um handler inicializado.
func NewHandler(servico *Servico) *Handler {
	return &Handler{Servico: servico}
}

// CriarVeiculo cadastra um novo veículo.
func (h *Handler) CriarVeiculo(w http.ResponseWriter, r *http.Request) {
	var req criarVeiculoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Servico.Registrar(atorDaRequisicao(r), DadosVeiculo{
		Modelo:        req.Modelo,
		Marca:         req.Marca,
		Ano:           req.Ano,
		Cor:           req.Cor,
		Placa:         req.Placa,
		Quilometragem: req.Quilometragem,
		Categoria:     req.Categoria,
		Seguro:        req.Seguro,
		ValorDiaria:   req.ValorDiaria,
		Observacoes:   req.Observacoes,
	})
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(v)
}

// ListarVeiculos retorna a frota com busca, filtros e ordenação.
func (h *Handler) ListarVeiculos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filtro := FiltroListagem{
		Busca:      q.Get("busca"),
		Status:     q.Get("status"),
		Categoria:  q.Get("categoria"),
		OrdenarPor: q.Get("ordenarPor"),
		Ordem:      q.Get("ordem"),
	}
	if n, err := strconv.Atoi(q.Get("limite")); err == nil {
		filtro.Limite = n
	}
	if n, err := strconv.Atoi(q.Get("pagina")); err == nil && n > 0 {
		filtro.Pagina = n - 1
	}

	veiculos, total, err := h.Servico.Listar(filtro)
	if err != nil {
		http.Error(w, "erro ao listar veículos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listagemResponse{Veiculos: veiculos, Total: total})
}

// BuscarPorID retorna um veículo pelo ID.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Servico.BuscarPorID(uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// AtualizarVeiculo aplica alterações parciais a um veículo.
func (h *Handler) AtualizarVeiculo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atualizarVeiculoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Servico.Atualizar(atorDaRequisicao(r), uint(id), AtualizacaoVeiculo{
		Modelo:        req.Modelo,
		Marca:         req.Marca,
		Ano:           req.Ano,
		Cor:           req.Cor,
		Placa:         req.Placa,
		Quilometragem: req.Quilometragem,
		Categoria:     req.Categoria,
		Seguro:        req.Seguro,
		ValorDiaria:   req.ValorDiaria,
		Observacoes:   req.Observacoes,
	})
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// InativarVeiculo aplica soft delete ao veículo.
func (h *Handler) InativarVeiculo(w http.ResponseWriter, r *http.Request) {
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
	json.NewEncoder(w).Encode(map[string]string{"mensagem": "veículo inativado com sucesso"})
}

// VerificarPlaca responde se uma placa está livre para cadastro.
// Usada pela validação em tempo real do formulário.
func (h *Handler) VerificarPlaca(w http.ResponseWriter, r *http.Request) {
	placa := r.URL.Query().Get("placa")
	if placa == "" {
		http.Error(w, "placa é obrigatória", http.StatusBadRequest)
		return
	}
	var excluirID uint
	if raw := r.URL.Query().Get("veiculoId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			excluirID = uint(id)
		}
	}

	disponivel, mensagem, err := h.Servico.VerificarPlaca(placa, excluirID)
	if err != nil {
		http.Error(w, "erro ao verificar placa", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"disponivel": disponivel,
		"mensagem":   mensagem,
	})
}

func atorDaRequisicao(r *http.Request) auditoria.Ator {
	return auditoria.Ator{
		UsuarioID: auth.UsuarioDaRequisicao(r),
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
