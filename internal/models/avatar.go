package models

import (
	"time"

	"github.com/google/uuid"
)

// Avatar is a selectable on-screen AI presenter persona.
type Avatar struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Gender     string    `db:"gender" json:"gender"` // male, female or neutral
	Appearance string    `db:"appearance" json:"appearance"`
	ImageURL   string    `db:"image_url" json:"imageUrl"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
}
