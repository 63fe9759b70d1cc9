package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/pkg/cryptox"
	"github.com/aussiebroadwan/pantry/pkg/idx"
	"github.com/aussiebroadwan/pantry/pkg/slogx"
)

// DefaultTokenTTL is how long an issued token stays valid unless configured.
const DefaultTokenTTL = 30 * 24 * time.Hour

// TokenService exchanges credentials for opaque tokens and resolves them
// back to users. Only the fingerprint of a token is persisted.
type TokenService struct {
	Store store.Store
	Users *UserService

	// TTL bounds the lifetime of issued tokens. Zero issues tokens that
	// never expire.
	TTL time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Issue checks email and password and returns a freshly minted token.
// Unknown emails, wrong passwords and inactive accounts all fail with
// ErrAuthentication.
func (s *TokenService) Issue(ctx context.Context, email, password string) (string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	v := &ValidationError{}
	email = domain.NormalizeEmail(email)
	if email == "" {
		v.Add("email", MsgRequired)
	}
	if password == "" {
		v.Add("password", MsgRequired)
	}
	if err := v.Err(); err != nil {
		return "", err
	}

	// 2. Resolve user and check the password
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("token requested for unknown email")
			return "", ErrAuthentication
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", err
	}
	if !s.Users.CheckPassword(u, password) {
		log.Warn("token requested with wrong password", slog.String("user_id", u.ID))
		return "", ErrAuthentication
	}
	if !u.IsActive {
		log.Warn("token requested for inactive user", slog.String("user_id", u.ID))
		return "", ErrAuthentication
	}

	// 3. Mint the token
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate token", slog.Any("error", err))
		return "", err
	}

	now := s.now()
	tok := domain.AuthToken{
		ID:        idx.NewAt(now).String(),
		UserID:    u.ID,
		KeyHash:   cryptox.FingerprintToken(raw),
		CreatedAt: now,
	}
	if s.TTL > 0 {
		exp := now.Add(s.TTL)
		tok.ExpiresAt = &exp
	}

	// 4. Persist and record the login
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AuthTokens().CreateAuthToken(ctx, tok); err != nil {
			return err
		}
		return tx.Users().UpdateLastLogin(ctx, u.ID, now)
	})
	if err != nil {
		log.Error("failed to store token", slog.Any("error", err))
		return "", err
	}

	log.Info("token issued", slog.String("user_id", u.ID))
	return raw, nil
}

// Authenticate resolves a presented token to its active owner.
func (s *TokenService) Authenticate(ctx context.Context, raw string) (domain.User, error) {
	if raw == "" {
		return domain.User{}, ErrAuthentication
	}

	tok, err := s.Store.AuthTokens().GetAuthTokenByHash(ctx, cryptox.FingerprintToken(raw))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrAuthentication
		}
		return domain.User{}, err
	}
	if tok.Expired(s.now()) {
		return domain.User{}, ErrAuthentication
	}

	u, err := s.Store.Users().GetUserByID(ctx, tok.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrAuthentication
		}
		return domain.User{}, err
	}
	if !u.IsActive {
		return domain.User{}, ErrAuthentication
	}
	return u, nil
}

// Revoke deletes the given token. Revoking an unknown token fails with
// ErrAuthentication.
func (s *TokenService) Revoke(ctx context.Context, raw string) error {
	err := s.Store.AuthTokens().DeleteAuthTokenByHash(ctx, cryptox.FingerprintToken(raw))
	if errors.Is(err, store.ErrNotFound) {
		return ErrAuthentication
	}
	return err
}
