package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/locadora-bm/api-locadora/internal/auditoria"
	"github.com/locadora-bm/api-locadora/internal/auth"
	"github.com/locadora-bm/api-locadora/internal/cliente"
	"github.com/locadora-bm/api-locadora/internal/locacao"
	"github.com/locadora-bm/api-locadora/internal/logger"
	"github.com/locadora-bm/api-locadora/internal/manutencao"
	"github.com/locadora-bm/api-locadora/internal/reserva"
	"github.com/locadora-bm/api-locadora/internal/usuario"
	"github.com/locadora-bm/api-locadora/internal/utils/db"
	"github.com/locadora-bm/api-locadora/internal/veiculo"
)

func main() {
	// .env ausente não é erro em produção; as variáveis vêm do ambiente.
	_ = godotenv.Load()

	log := logger.Novo()
	defer log.Sync()

	conexao, err := db.Conectar()
	if err != nil {
		log.Fatalw("erro ao conectar no banco", "erro", err)
	}

	if err := conexao.AutoMigrate(
		&usuario.Usuario{},
		&veiculo.Veiculo{},
		&cliente.Cliente{},
		&reserva.Reserva{},
		&locacao.Locacao{},
		&manutencao.Manutencao{},
		&auditoria.LogAuditoria{},
	); err != nil {
		log.Fatalw("erro no AutoMigrate", "erro", err)
	}

	// Serviços
	auditoriaServico := auditoria.NovoServico(conexao, log)
	veiculoServico := veiculo.NovoServico(conexao, auditoriaServico, log)
	clienteServico := cliente.NovoServico(conexao, auditoriaServico, log)
	locacaoServico := locacao.NovoServico(conexao, auditoriaServico, log)
	reservaServico := reserva.NovoServico(conexao, locacaoServico, auditoriaServico, log)
	manutencaoServico := manutencao.NovoServico(conexao, auditoriaServico, log)

	// Handlers
	usuarioHandler := usuario.NewHandler(conexao, auditoriaServico)
	veiculoHandler := veiculo.NewHandler(veiculoServico)
	clienteHandler := cliente.NewHandler(clienteServico)
	reservaHandler := reserva.NewHandler(reservaServico)
	locacaoHandler := locacao.NewHandler(locacaoServico)
	manutencaoHandler := manutencao.NewHandler(manutencaoServico)
	auditoriaHandler := auditoria.NovoHandler(conexao)

	// Router
	r := mux.NewRouter()

	// Rota pública
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de usuários (somente administrador)
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequererAdmin)
	admin.HandleFunc("/usuarios", usuarioHandler.CriarUsuario).Methods("POST")
	admin.HandleFunc("/usuarios", usuarioHandler.ListarUsuarios).Methods("GET")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")

	// Rotas de veículos
	api.HandleFunc("/veiculos", veiculoHandler.CriarVeiculo).Methods("POST")
	api.HandleFunc("/veiculos", veiculoHandler.ListarVeiculos).Methods("GET")
	api.HandleFunc("/veiculos/verificar-placa", veiculoHandler.VerificarPlaca).Methods("GET")
	api.HandleFunc("/veiculos/{id}", veiculoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/veiculos/{id}", veiculoHandler.AtualizarVeiculo).Methods("PUT")
	api.HandleFunc("/veiculos/{id}", veiculoHandler.InativarVeiculo).Methods("DELETE")
	api.HandleFunc("/veiculos/{id}/reservas", reservaHandler.ListarPorVeiculo).Methods("GET")
	api.HandleFunc("/veiculos/{id}/locacoes", locacaoHandler.ListarPorVeiculo).Methods("GET")
	api.HandleFunc("/veiculos/{id}/manutencoes", manutencaoHandler.ListarPorVeiculo).Methods("GET")

	// Rotas de clientes
	api.HandleFunc("/clientes", clienteHandler.CriarCliente).Methods("POST")
	api.HandleFunc("/clientes", clienteHandler.ListarClientes).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.AtualizarCliente).Methods("PUT")
	api.HandleFunc("/clientes/{id}", clienteHandler.InativarCliente).Methods("DELETE")
	api.HandleFunc("/clientes/{id}/reservas", reservaHandler.ListarPorCliente).Methods("GET")
	api.HandleFunc("/clientes/{id}/locacoes", locacaoHandler.ListarPorCliente).Methods("GET")

	// Rotas de reservas
	api.HandleFunc("/reservas", reservaHandler.CriarReserva).Methods("POST")
	api.HandleFunc("/reservas/{id}", reservaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/reservas/{id}/confirmar", reservaHandler.ConfirmarReserva).Methods("POST")
	api.HandleFunc("/reservas/{id}/cancelar", reservaHandler.CancelarReserva).Methods("POST")
	api.HandleFunc("/reservas/{id}/converter", reservaHandler.ConverterEmLocacao).Methods("POST")

	// Rotas de locações
	api.HandleFunc("/locacoes", locacaoHandler.IniciarLocacao).Methods("POST")
	api.HandleFunc("/locacoes/ativas", locacaoHandler.ListarAtivas).Methods("GET")
	api.HandleFunc("/locacoes/{id}", locacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/locacoes/{id}/devolucao", locacaoHandler.FinalizarLocacao).Methods("POST")
	api.HandleFunc("/locacoes/{id}/cancelar", locacaoHandler.CancelarLocacao).Methods("POST")

	// Rotas de manutenções
	api.HandleFunc("/manutencoes", manutencaoHandler.AgendarManutencao).Methods("POST")
	api.HandleFunc("/manutencoes/pendentes", manutencaoHandler.ListarPendentes).Methods("GET")
	api.HandleFunc("/manutencoes/{id}", manutencaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/manutencoes/{id}/iniciar", manutencaoHandler.IniciarManutencao).Methods("POST")
	api.HandleFunc("/manutencoes/{id}/concluir", manutencaoHandler.ConcluirManutencao).Methods("POST")
	api.HandleFunc("/manutencoes/{id}/cancelar", manutencaoHandler.CancelarManutencao).Methods("POST")

	// Trilha de auditoria (somente administrador)
	admin.HandleFunc("/auditoria", auditoriaHandler.Listar).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	log.Infow("servidor iniciado", "porta", porta)
	log.Fatal(http.ListenAndServe(":"+porta, c.Handler(r)))
}
