package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carrega a identidade do usuário autenticado.
type Claims struct {
	UsuarioID uint `json:"usuarioId"`
	IsAdmin   bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

func segredo() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GerarToken gera um JWT com validade de 24h.
func GerarToken(usuarioID uint, isAdmin bool) (string, error) {
	claims := &Claims{
		UsuarioID: usuarioID,
		IsAdmin:   isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(segredo())
}

// ValidarToken valida o token e retorna as claims.
func ValidarToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return segredo(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("não foi possível extrair claims")
	}
	return claims, nil
}
