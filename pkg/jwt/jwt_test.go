package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-billing-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("secreto", "u1", "admin", "pos", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u1", "admin", "pos", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "u1", "admin", "pos", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u1", "admin", "pos", 5)
	assert.Error(t, err)
}
