package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "Ana Pérez", jwt.RoleApprover, "supply-tracker", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse("secret", "supply-tracker", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana Pérez", claims.Name)
	assert.Equal(t, jwt.RoleApprover, claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "", jwt.RoleAdmin, "otro", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otra-clave", "", token)
	assert.Error(t, err, "firma incorrecta")

	_, err = jwt.Parse("secret", "supply-tracker", token)
	assert.Error(t, err, "emisor distinto")

	claims, err := jwt.Parse("secret", "", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Name, "sin nombre se usa el ID")

	expired, err := jwt.Generate("secret", "u-1", "", jwt.RoleAdmin, "", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("secret", "", expired)
	assert.Error(t, err)

	_, err = jwt.Generate("", "u-1", "", "", "", 5)
	assert.Error(t, err)
}
