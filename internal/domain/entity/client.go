package entity

import "time"

// Client representa la ficha de un cliente de la empresa.
type Client struct {
	ID         string
	BusinessID string
	Name       string
	Email      string
	Phone      string
	Company    string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
