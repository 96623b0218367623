package utils

import "github.com/google/uuid"

// GetToken returns a random opaque token.
func GetToken() string {
	return uuid.NewString()
}
