package domain

import "time"

// Token describes issued bearer token metadata. Tokens are never
// persisted; validity is entirely signature plus expiry.
type Token struct {
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
