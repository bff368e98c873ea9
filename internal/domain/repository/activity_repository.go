package repository

import (
	"context"
	"time"
)

// ActivityRecord fila de la bitácora de actividad.
type ActivityRecord struct {
	ID         string
	Action     string
	Meta       map[string]any
	OccurredAt time.Time
}

// ActivityRepository persistencia opcional de la bitácora (fuera del núcleo).
type ActivityRepository interface {
	Insert(ctx context.Context, rec ActivityRecord) error
	ListRecent(ctx context.Context, limit int) ([]ActivityRecord, error)
}
