// Package tenant define el contexto explícito de asociación que reciben
// todas las operaciones de catálogo, stock y estadísticas.
package tenant

import "strings"

// Scope identifica la asociación a nombre de la cual se ejecuta una operación.
// Un Scope sin AssociationID significa "sin asociación": las lecturas devuelven
// colecciones vacías y las escrituras se rechazan.
type Scope struct {
	AssociationID string
	Email         string
}

// Resolved informa si el scope apunta a una asociación existente.
func (s Scope) Resolved() bool {
	return s.AssociationID != ""
}

// Unresolved construye un scope vacío para un email sin asociación.
func Unresolved(email string) Scope {
	return Scope{Email: NormalizeEmail(email)}
}

// NormalizeEmail recorta espacios y pasa a minúsculas; el email es la clave única de la asociación.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
