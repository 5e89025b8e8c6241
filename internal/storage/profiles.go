// Package storage loads startup profiles for report generation. Report
// requests carry only a startupId; the repository resolves it against
// Postgres with a Redis read-through cache.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fundlink/internal/common/errors"
	"fundlink/internal/common/logger"
	"fundlink/internal/common/metrics"
	"fundlink/internal/scoring/match"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 10 * time.Minute

// ProfileRepository fetches startup profiles by ID.
type ProfileRepository struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

// NewProfileRepository creates a repository. redis may be nil; caching is
// then skipped entirely.
func NewProfileRepository(db *sql.DB, redisClient *redis.Client, cacheTTL time.Duration, log logger.Logger) *ProfileRepository {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &ProfileRepository{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// GetStartupProfile loads one startup profile, cache first.
func (r *ProfileRepository) GetStartupProfile(ctx context.Context, startupID string) (*match.StartupProfile, error) {
	cacheKey := "startup:profile:" + startupID

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var profile match.StartupProfile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				metrics.ProfileCacheHits.WithLabelValues("hit").Inc()
				return &profile, nil
			}
		}
		metrics.ProfileCacheHits.WithLabelValues("miss").Inc()
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT domain, stage, funding_ask, location, business_model, revenue, users, growth_rate, team_size
		FROM startups WHERE id = $1`, startupID)

	var profile match.StartupProfile
	var ask, revenue, users, growthRate, teamSize sql.NullString
	err := row.Scan(&profile.Domain, &profile.Stage, &ask, &profile.Location,
		&profile.BusinessModel, &revenue, &users, &growthRate, &teamSize)
	if err == sql.ErrNoRows {
		return nil, errors.NewProfileNotFoundError(startupID)
	}
	if err != nil {
		return nil, errors.NewStorageFailedError(err)
	}

	profile.Ask = match.FlexValue(ask.String)
	profile.Revenue = match.FlexValue(revenue.String)
	profile.Users = match.FlexValue(users.String)
	profile.GrowthRate = match.FlexValue(growthRate.String)
	profile.TeamSize = match.FlexValue(teamSize.String)

	if r.redis != nil {
		data, _ := json.Marshal(profile)
		if err := r.redis.Set(ctx, cacheKey, data, r.cacheTTL).Err(); err != nil {
			r.logger.WithError(err).Warn("Profile cache write failed", map[string]interface{}{
				"startupId": startupID,
			})
		}
	}

	return &profile, nil
}
