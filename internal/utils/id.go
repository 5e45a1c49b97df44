package utils

import "github.com/google/uuid"

// GenerateID returns a fresh opaque identifier for a stored analysis.
func GenerateID() string {
	return uuid.NewString()
}
