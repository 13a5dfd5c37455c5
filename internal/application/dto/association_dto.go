package dto

import "time"

// EnsureAssociationRequest cuerpo opcional de POST /api/association.
// Si Name viene vacío se usa el nombre del token de identidad.
type EnsureAssociationRequest struct {
	Name string `json:"name"`
}

// AssociationResponse salida de una asociación.
type AssociationResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
