package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)

	token, err := NewTokenWithSubject(ja, time.Minute, "admin")
	require.NoError(t, err)

	subject, err := VerifyToken(ja, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)

	token, err := NewToken(ja, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(ja, token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	other := jwtauth.New("HS256", []byte("other-secret"), nil)

	token, err := NewToken(ja, time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(other, token)
	assert.Error(t, err)
}
