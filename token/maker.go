package token

import "time"

// Maker creates and verifies staff access tokens. Keeping it behind an
// interface lets tests substitute a stub maker.
type Maker interface {
	CreateToken(actorID string, duration time.Duration) (string, error)

	VerifyToken(token string) (*Payload, error)
}
