package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de violación de constraint único.
const sqlstateUniqueViolation = "23505"

// isUniqueViolation indica si el error proviene de un índice o constraint
// único. Los repos lo traducen a domain.ErrDuplicate: códigos de movimiento,
// códigos de producto por empresa, consecutivos de conteo y product_code por
// conteo dependen de esta detección.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlstateUniqueViolation
}
