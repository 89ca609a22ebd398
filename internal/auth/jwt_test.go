package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerarEValidarToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UsuarioID)
	assert.True(t, claims.IsAdmin)
}

func TestValidarTokenComSegredoErrado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-a")
	token, err := GerarToken(1, false)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "segredo-b")
	_, err = ValidarToken(token)
	assert.Error(t, err)
}

func TestValidarTokenMalformado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	_, err := ValidarToken("nao-e-um-jwt")
	assert.Error(t, err)
}
