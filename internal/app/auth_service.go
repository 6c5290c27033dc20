package app

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/auth"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/security"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLen = 8

type AuthService struct {
	users      user.Repository
	tokens     auth.RefreshTokenRepository
	jwt        *security.JWTProvider
	logger     *slog.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users user.Repository, tokens auth.RefreshTokenRepository, jwt *security.JWTProvider, logger *slog.Logger, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{users: users, tokens: tokens, jwt: jwt, logger: logger, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     user.Role
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, *auth.TokenPair, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "name is required"
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		details["email"] = "a valid email is required"
	}
	if len(input.Password) < minPasswordLen {
		details["password"] = "password must be at least 8 characters"
	}
	if !user.ValidRole(input.Role) {
		details["role"] = "role must be candidate or recruiter"
	}
	if len(details) > 0 {
		return nil, nil, common.NewValidationError("invalid registration", details)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.users.Create(ctx, user.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
	})
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issuePair(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("user registered", "user_id", account.ID.String(), "role", string(account.Role))
	return account, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, *auth.TokenPair, error) {
	account, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	pair, err := s.issuePair(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	stored, err := s.tokens.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if stored.RevokedAt != nil || stored.ExpiresAt.Before(now) {
		return nil, common.NewError(common.CodeUnauthorized, "refresh token expired or revoked", nil)
	}
	account, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Revoke(ctx, stored.TokenHash, now); err != nil {
		return nil, err
	}
	return s.issuePair(ctx, account)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, hashToken(refreshToken), time.Now().UTC())
}

func (s *AuthService) Me(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issuePair(ctx context.Context, account *user.User) (*auth.TokenPair, error) {
	access, expiresAt, err := s.jwt.Generate(account.ID, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue access token", err)
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue refresh token", err)
	}
	refresh := hex.EncodeToString(raw)
	now := time.Now().UTC()
	if err := s.tokens.Store(ctx, auth.RefreshToken{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return &auth.TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
