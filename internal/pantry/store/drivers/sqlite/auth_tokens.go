package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store/drivers/sqlite/gen"
)

type authTokensRepo struct {
	q *gen.Queries
}

func (r *authTokensRepo) CreateAuthToken(ctx context.Context, t domain.AuthToken) error {
	err := r.q.CreateAuthToken(ctx, gen.CreateAuthTokenParams{
		ID:        t.ID,
		UserID:    t.UserID,
		KeyHash:   t.KeyHash,
		ExpiresAt: mapOptionalTime(t.ExpiresAt),
		CreatedAt: stamp(t.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *authTokensRepo) GetAuthTokenByHash(ctx context.Context, keyHash string) (domain.AuthToken, error) {
	row, err := r.q.GetAuthTokenByHash(ctx, keyHash)
	if err != nil {
		return domain.AuthToken{}, mapNotFound(err)
	}
	return mapAuthToken(row), nil
}

func (r *authTokensRepo) DeleteAuthTokenByHash(ctx context.Context, keyHash string) error {
	return mustAffect(r.q.DeleteAuthTokenByHash(ctx, keyHash))
}

func (r *authTokensRepo) DeleteUserAuthTokens(ctx context.Context, userID string) error {
	return r.q.DeleteUserAuthTokens(ctx, userID)
}

func (r *authTokensRepo) DeleteExpiredAuthTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredAuthTokens(ctx, sql.NullTime{Time: utc(now), Valid: true})
}
