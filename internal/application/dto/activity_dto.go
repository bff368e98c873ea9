package dto

import "time"

// ActivityDTO entrada de la bitácora persistida.
type ActivityDTO struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Meta       map[string]any `json:"meta"`
	OccurredAt time.Time      `json:"occurred_at"`
}
