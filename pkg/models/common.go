package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID string
func NewUUID() string {
	return uuid.New().String()
}

// Timestamps contains common time fields
type Timestamps struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Round2 rounds to two decimal places, the precision used for all
// externally visible scores and percentages.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
