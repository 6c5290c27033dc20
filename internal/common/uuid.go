package common

import (
	"strings"

	"github.com/google/uuid"
)

// UUID is the identifier type shared by all entities. It is a plain string
// underneath so it scans/values cleanly through database/sql and json.
type UUID string

func NewUUID() UUID {
	return UUID(uuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return UUID(parsed.String()), nil
}

func (u UUID) String() string {
	return string(u)
}

func (u UUID) IsZero() bool {
	return u == ""
}
