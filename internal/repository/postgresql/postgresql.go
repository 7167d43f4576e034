// Package postgresql implements the domain repositories on pgx.
package postgresql

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeInvalidTextEncoding = "22P02"
)

// isUniqueViolation reports a unique key violation, optionally on one
// named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// isInvalidID catches ids that are not valid UUIDs; lookups treat them as
// missing rows.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextEncoding
}

// conditions accumulates AND-ed WHERE clauses with positional arguments.
type conditions struct {
	clauses []string
	args    []interface{}
}

// add appends clause, where %d is replaced by the placeholder index of arg.
func (c *conditions) add(clause string, arg interface{}) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(c.clauses, " AND ")
}

// page appends LIMIT/OFFSET arguments and returns the clause.
func (c *conditions) page(p utils.Pagination) (string, []interface{}) {
	args := append(append([]interface{}{}, c.args...), p.Limit, p.Offset())
	n := len(c.args)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", n+1, n+2), args
}

// dateArg renders a calendar date for a $n::date parameter so that the
// stored day does not depend on the session time zone.
func dateArg(t time.Time) string {
	return utils.FormatDate(t)
}
