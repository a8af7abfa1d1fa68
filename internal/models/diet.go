package models

import (
	"time"
)

// Diet represents a single meal entry owned by exactly one user.
// DateHour is the moment the meal pertains to, not the record creation time.
type Diet struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"-" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	DateHour    time.Time `json:"date_hour" db:"date_hour"`
	IsDiet      bool      `json:"is_diet" db:"is_diet"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}
