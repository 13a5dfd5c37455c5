package entity

import "time"

// Association representa una asociación/tienda (tenant). Se crea una sola vez por email
// y es dueña de sus categorías, productos y transacciones.
type Association struct {
	ID        string
	Email     string // único
	Name      string
	CreatedAt time.Time
}
