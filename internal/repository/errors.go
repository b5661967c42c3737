package repository

import (
	"strings"

	"github.com/lib/pq"

	"vidora/internal/model"
)

// mapUniqueViolation translates a Postgres unique-constraint violation into
// the model error for the colliding column. Other errors pass through.
func mapUniqueViolation(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23505" {
		return err
	}

	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return model.ErrEmailTaken
	case strings.Contains(pqErr.Constraint, "username"):
		return model.ErrUsernameTaken
	default:
		return err
	}
}
