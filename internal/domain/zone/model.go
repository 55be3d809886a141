package zone

import (
	"errors"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxNameLength = 200
)

// Zone is a regional grouping of clubs (the top of the zone -> club -> event
// hierarchy).
type Zone struct {
	ID             string
	Name           string
	SecretaryName  string
	SecretaryEmail string
	CreatedAt      time.Time
}

// Validate checks the zone's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (z *Zone) Validate() error {
	if strings.TrimSpace(z.Name) == "" {
		return errors.New("zone name cannot be empty")
	}
	if len(z.Name) > MaxNameLength {
		return errors.New("zone name cannot exceed 200 characters")
	}
	if z.SecretaryEmail != "" && !strings.Contains(z.SecretaryEmail, "@") {
		return errors.New("secretary email must contain '@'")
	}
	return nil
}
