package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxIsAdmin   ctxKey = "isAdmin"
)

// MiddlewareAutenticacao exige um Bearer token válido e injeta a
// identidade do usuário no contexto da requisição.
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UsuarioID)
		ctx = context.WithValue(ctx, CtxIsAdmin, claims.IsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequererAdmin bloqueia usuários sem perfil administrador.
func RequererAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxIsAdmin)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "acesso restrito a administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UsuarioDaRequisicao extrai o ID do usuário autenticado do contexto.
func UsuarioDaRequisicao(r *http.Request) uint {
	if id, ok := r.Context().Value(CtxUsuarioID).(uint); ok {
		return id
	}
	return 0
}
