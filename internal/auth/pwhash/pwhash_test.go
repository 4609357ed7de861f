package pwhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndValidate(t *testing.T) {
	ph, err := New(16, 10000)
	require.NoError(t, err)

	hash, err := ph.HashPassword("hunter2")
	require.NoError(t, err)

	require.NoError(t, ph.Validate("hunter2", hash))
	assert.Error(t, ph.Validate("hunter3", hash))
}

func TestHashesAreSalted(t *testing.T) {
	ph, err := New(16, 10000)
	require.NoError(t, err)

	h1, err := ph.HashPassword("same")
	require.NoError(t, err)
	h2, err := ph.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.NoError(t, ph.Validate("same", h1))
	assert.NoError(t, ph.Validate("same", h2))
}

func TestValidateRejectsMalformed(t *testing.T) {
	ph, err := New(16, 10000)
	require.NoError(t, err)

	assert.Error(t, ph.Validate("x", "not-a-hash"))
	assert.Error(t, ph.Validate("x", "abc$def$ghi"))
}

func TestNewRejectsWeakParams(t *testing.T) {
	_, err := New(4, 10000)
	assert.Error(t, err)
	_, err = New(16, 10)
	assert.Error(t, err)
}
