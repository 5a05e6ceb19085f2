package common

import (
	guuid "github.com/google/uuid"
)

// UUID is a canonical-form UUID string. Stored as text so it travels
// through database/sql and JSON without adapters.
type UUID string

func NewUUID() UUID {
	return UUID(guuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	parsed, err := guuid.Parse(value)
	if err != nil {
		return "", err
	}
	return UUID(parsed.String()), nil
}

func (u UUID) String() string {
	return string(u)
}
