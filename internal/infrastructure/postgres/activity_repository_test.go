package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

// execRecorder Querier que solo registra Exec.
type execRecorder struct {
	sql  string
	args []any
	err  error
}

func (e *execRecorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql, e.args = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), e.err
}

func (e *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no implementado")
}

func (e *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func TestActivityRepo_RecordExtraeColumnas(t *testing.T) {
	q := &execRecorder{}
	at := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	repo := NewActivityRepository(q)
	repo.now = func() time.Time { return at }

	err := repo.Record(context.Background(), "request.created", map[string]any{
		"requestId":   "REQ-001",
		"totalAmount": "250.50",
		"actor":       "ana",
	})
	require.NoError(t, err)
	require.Len(t, q.args, 7)

	assert.Contains(t, q.sql, "INSERT INTO activity_log")
	assert.NotEmpty(t, q.args[0])
	assert.Equal(t, "request.created", q.args[1])
	require.IsType(t, (*string)(nil), q.args[2])
	assert.Equal(t, "REQ-001", *q.args[2].(*string))
	assert.Nil(t, q.args[3].(*string), "sin sku en el meta")
	amount := q.args[4].(*decimal.Decimal)
	require.NotNil(t, amount)
	assert.True(t, decimal.RequireFromString("250.50").Equal(*amount))
	assert.Equal(t, at, q.args[6])

	var meta map[string]any
	require.NoError(t, json.Unmarshal(q.args[5].([]byte), &meta))
	assert.Equal(t, "ana", meta["actor"])
}

func TestActivityRepo_UnitCostComoMonto(t *testing.T) {
	q := &execRecorder{}
	require.NoError(t, NewActivityRepository(q).Insert(context.Background(), repository.ActivityRecord{
		ID: "x", Action: "stock_in.created", Meta: map[string]any{"sku": "PAP-01", "unitCost": "12.5"},
	}))
	assert.Equal(t, "PAP-01", *q.args[3].(*string))
	assert.True(t, decimal.RequireFromString("12.5").Equal(*q.args[4].(*decimal.Decimal)))
}

func TestActivityRepo_Duplicado(t *testing.T) {
	q := &execRecorder{err: &pgconn.PgError{Code: "23505"}}
	err := NewActivityRepository(q).Insert(context.Background(), repository.ActivityRecord{ID: "x", Action: "a"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestActivityRepo_ErrorDeBaseSeEnvuelve(t *testing.T) {
	boom := errors.New("conexión cerrada")
	q := &execRecorder{err: boom}
	err := NewActivityRepository(q).Insert(context.Background(), repository.ActivityRecord{ID: "x", Action: "a"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}
