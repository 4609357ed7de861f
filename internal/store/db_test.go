package store

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPqErrorClassification(t *testing.T) {
	ps := &PGStore{}

	serialization := fmt.Errorf("tx failed: %w", &pq.Error{Code: "40001"})
	unique := fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505"})
	foreign := fmt.Errorf("delete failed: %w", &pq.Error{Code: "23503"})
	plain := fmt.Errorf("connection reset")

	assert.True(t, ps.IsErrorRepeat(serialization))
	assert.False(t, ps.IsErrorRepeat(unique))
	assert.False(t, ps.IsErrorRepeat(plain))

	assert.True(t, ps.IsErrUniqueViolation(unique))
	assert.False(t, ps.IsErrUniqueViolation(foreign))

	assert.True(t, ps.IsErrForeignKeyViolation(foreign))
	assert.False(t, ps.IsErrForeignKeyViolation(serialization))
	assert.False(t, ps.IsErrForeignKeyViolation(plain))
}
