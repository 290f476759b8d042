package security

import "github.com/google/uuid"

// GenerateSessionToken mints a new random session token. Tokens are not
// derived from account data; possession of the current token is the only
// proof of an active session.
func GenerateSessionToken() string {
	return uuid.New().String()
}
