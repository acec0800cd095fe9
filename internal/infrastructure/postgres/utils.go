package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/brecho-pos/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isInvalidText verifica si un error es invalid_text_representation (22P02),
// p. ej. un id que no es UUID comparado contra una columna uuid.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// isMissing indica que la fila buscada no existe: sin filas o id malformado.
func isMissing(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// translate convierte un id malformado en domain.ErrNotFound; el resto pasa sin cambios.
func translate(err error) error {
	if isInvalidText(err) {
		return domain.ErrNotFound
	}
	return err
}

// nullIfEmpty convierte "" en NULL para columnas de referencia opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// emptyIfNull inverso de nullIfEmpty al escanear.
func emptyIfNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
