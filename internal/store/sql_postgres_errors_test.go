package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
)

func TestPostgresError(t *testing.T) {
	assert.Equal(t, pgerrcode.UniqueViolation, postgresError(pgError(pgerrcode.UniqueViolation)))
	assert.Equal(t, pgerrcode.UniqueViolation, postgresError(fmt.Errorf("wrapped: %w", pgError(pgerrcode.UniqueViolation))))
	assert.Equal(t, "", postgresError(errors.New("plain")))
	assert.Equal(t, "", postgresError(nil))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: errUniqueViolation},
		{name: "malformed uuid", err: pgError(pgerrcode.InvalidTextRepresentation), want: errInvalidIdentifier},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: ErrStoreUnavailable},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), want: ErrStoreUnavailable},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError), want: ErrExecutingQuery},
		{name: "non postgres error", err: errors.New("boom"), want: ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.NoError(t, classifyError(nil))
}
