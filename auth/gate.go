// Package auth holds the capability gate for administrative actions.
package auth

import "crypto/subtle"

// Gate decides whether an authenticated identity may perform admin actions.
// Callers only consume the boolean; swapping in a richer policy engine
// touches nothing else.
type Gate interface {
	IsAuthorized(identity string) bool
}

// EmailGate allows exactly one configured administrator email.
type EmailGate struct {
	adminEmail string
}

func NewEmailGate(adminEmail string) *EmailGate {
	return &EmailGate{adminEmail: adminEmail}
}

func (g *EmailGate) IsAuthorized(identity string) bool {
	if g.adminEmail == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(identity), []byte(g.adminEmail)) == 1
}
