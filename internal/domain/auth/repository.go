package auth

import (
	"context"
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

type RefreshTokenRepository interface {
	Store(ctx context.Context, token RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string, revokedAt time.Time) error
	RevokeAll(ctx context.Context, userID common.UUID, revokedAt time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
