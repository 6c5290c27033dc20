package auth

import (
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

// RefreshToken is stored hashed; the raw token only ever travels to the client.
type RefreshToken struct {
	ID        common.UUID
	UserID    common.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
