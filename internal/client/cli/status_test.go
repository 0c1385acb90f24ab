package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTokenIdentity(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "4",
		"email": "buyer@example.com",
		"name":  "Buyer",
		"role":  "manager",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, printTokenIdentity(cmd, token))
	assert.Contains(t, buf.String(), "Buyer")
	assert.Contains(t, buf.String(), "buyer@example.com")
	assert.Contains(t, buf.String(), "manager")
	assert.Contains(t, buf.String(), "Access token expires")
}

func TestPrintTokenIdentityGarbageToken(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := printTokenIdentity(cmd, "not-a-jwt")
	assert.Error(t, err)
}
