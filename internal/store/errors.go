package store

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// uniqueViolation reports whether err is a unique-constraint failure and, if
// so, the constraint or column it names ("users_email_key", "users.email").
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pqUniqueViolation {
			return pqErr.Constraint, true
		}
		return "", false
	}
	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):], true
	}
	return "", false
}
