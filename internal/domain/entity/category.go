package entity

import "time"

// Category representa una categoría de productos de una asociación.
type Category struct {
	ID            string
	AssociationID string
	Name          string
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
