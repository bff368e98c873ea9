package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo bitácora de actividad sobre PostgreSQL. También cumple notify.ActivityNotifier.
type ActivityRepo struct {
	q   Querier
	now func() time.Time
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q, now: time.Now}
}

// Record inserta una entrada con ID nuevo y la fecha actual.
func (r *ActivityRepo) Record(ctx context.Context, action string, meta map[string]any) error {
	return r.Insert(ctx, repository.ActivityRecord{
		ID:         uuid.New().String(),
		Action:     action,
		Meta:       meta,
		OccurredAt: r.now(),
	})
}

// Insert persiste una entrada. request_id, sku y amount se extraen del meta para poder filtrar.
func (r *ActivityRepo) Insert(ctx context.Context, rec repository.ActivityRecord) error {
	metaJSON, err := json.Marshal(rec.Meta)
	if err != nil {
		return fmt.Errorf("marshal activity meta: %w", err)
	}
	query := `
		INSERT INTO activity_log (id, action, request_id, sku, amount, meta, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(ctx, query,
		rec.ID, rec.Action, metaString(rec.Meta, "requestId"), metaString(rec.Meta, "sku"),
		metaAmount(rec.Meta), metaJSON, rec.OccurredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas entradas, más recientes primero.
func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]repository.ActivityRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, action, meta, occurred_at
		FROM activity_log ORDER BY occurred_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var list []repository.ActivityRecord
	for rows.Next() {
		var (
			rec      repository.ActivityRecord
			metaJSON []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Action, &metaJSON, &rec.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &rec.Meta); err != nil {
				return nil, fmt.Errorf("unmarshal activity meta: %w", err)
			}
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func metaString(meta map[string]any, key string) *string {
	if s, ok := meta[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

// metaAmount toma totalAmount (solicitudes) o unitCost (entradas) como NUMERIC.
func metaAmount(meta map[string]any) *decimal.Decimal {
	for _, key := range []string{"totalAmount", "unitCost"} {
		if s, ok := meta[key].(string); ok {
			if d, err := decimal.NewFromString(s); err == nil {
				return &d
			}
		}
	}
	return nil
}
