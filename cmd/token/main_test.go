package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtmw "company_intel/internal/platform/jwt"
)

func runToken(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestTokenCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := runToken(t, "--client", "dashboard", "--ttl", "1h")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(out, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("cli-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.Subject)
	assert.Equal(t, jwtmw.Issuer, claims.Issuer)
}

func TestTokenCommand_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("missing client flag", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "cli-secret")
		_, err := runToken(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"client" not set`)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := runToken(t, "--client", "dashboard")
		assert.ErrorIs(t, err, jwtmw.ErrEmptySecret)
	})
}
