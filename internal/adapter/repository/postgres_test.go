package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"brokerdex/internal/domain/repository"
)

func TestBuildAgentWhere(t *testing.T) {
	cases := []struct {
		name      string
		filter    repository.AgentFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			filter:    repository.AgentFilter{},
			wantWhere: "",
			wantArgs:  []any{},
		},
		{
			name:      "query matches both name columns",
			filter:    repository.AgentFilter{Query: "Acme"},
			wantWhere: " WHERE (full_name ILIKE $1 OR company_name ILIKE $1)",
			wantArgs:  []any{"%Acme%"},
		},
		{
			name:      "city exact match",
			filter:    repository.AgentFilter{City: "Bandar Abbas"},
			wantWhere: " WHERE city = $1",
			wantArgs:  []any{"Bandar Abbas"},
		},
		{
			name:      "port matches either tag list",
			filter:    repository.AgentFilter{Port: "Shahid Rajaee"},
			wantWhere: " WHERE ($1 = ANY(customs) OR $1 = ANY(goods_types))",
			wantArgs:  []any{"Shahid Rajaee"},
		},
		{
			name:      "service matches either tag list",
			filter:    repository.AgentFilter{Service: "Electronics"},
			wantWhere: " WHERE ($1 = ANY(customs) OR $1 = ANY(goods_types))",
			wantArgs:  []any{"Electronics"},
		},
		{
			name:   "all filters combined in order",
			filter: repository.AgentFilter{Query: "Ali", City: "Tehran", Port: "X", Service: "Y"},
			wantWhere: " WHERE (full_name ILIKE $1 OR company_name ILIKE $1)" +
				" AND city = $2" +
				" AND ($3 = ANY(customs) OR $3 = ANY(goods_types))" +
				" AND ($4 = ANY(customs) OR $4 = ANY(goods_types))",
			wantArgs: []any{"%Ali%", "Tehran", "X", "Y"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := buildAgentWhere(tc.filter)
			assert.Equal(t, tc.wantWhere, where)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestIsUndefinedColumn(t *testing.T) {
	assert.True(t, isUndefinedColumn(&pgconn.PgError{Code: "42703"}))
	assert.True(t, isUndefinedColumn(fmt.Errorf("query: %w", &pgconn.PgError{Code: "42703"})))
	assert.False(t, isUndefinedColumn(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUndefinedColumn(errors.New("connection refused")))
	assert.False(t, isUndefinedColumn(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "42703"}))
	assert.False(t, isForeignKeyViolation(errors.New("connection refused")))
	assert.False(t, isForeignKeyViolation(nil))
}
