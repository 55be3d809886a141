package club

import (
	"errors"
	"strings"
	"time"
)

// Status constants.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Max length constants.
const (
	MaxNameLength    = 200
	MaxAddressLength = 500
)

// Domain errors.
var (
	ErrEmptyName   = errors.New("club name cannot be empty")
	ErrEmptyZoneID = errors.New("club must belong to a zone")
)

// Club is a member club within a zone. Club names are the join key for
// calendar imports, so Name should be the official club name.
type Club struct {
	ID           string
	ZoneID       string
	Name         string
	ContactEmail string
	Address      string
	Status       string
	CreatedAt    time.Time
}

// Validate checks the club's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (c *Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("club name cannot exceed 200 characters")
	}
	if c.ZoneID == "" {
		return ErrEmptyZoneID
	}
	if c.Status != StatusActive && c.Status != StatusInactive {
		return errors.New("club status must be 'active' or 'inactive'")
	}
	if len(c.Address) > MaxAddressLength {
		return errors.New("club address cannot exceed 500 characters")
	}
	if c.ContactEmail != "" && !strings.Contains(c.ContactEmail, "@") {
		return errors.New("contact email must contain '@'")
	}
	return nil
}
