package postgres

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados por los repositorios.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// psql builder de squirrel con placeholders $n para pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgErrorCode(err) == codeUniqueViolation }

// isForeignKeyViolation fila aún referenciada o referencia a una fila inexistente (23503).
func isForeignKeyViolation(err error) bool { return pgErrorCode(err) == codeForeignKeyViolation }

// isCheckViolation ej. quantity >= 0 (23514).
func isCheckViolation(err error) bool { return pgErrorCode(err) == codeCheckViolation }

// validID las columnas id son UUID; un id mal formado no puede existir y se trata como ausente
// en lugar de dejar que PostgreSQL devuelva 22P02.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
