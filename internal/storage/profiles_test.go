package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fundlink/internal/common/errors"
	"fundlink/internal/common/logger"
	"fundlink/internal/scoring/match"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileColumns() []string {
	return []string{"domain", "stage", "funding_ask", "location", "business_model",
		"revenue", "users", "growth_rate", "team_size"}
}

func TestGetStartupProfileFromDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT domain, stage").
		WithArgs("startup-1").
		WillReturnRows(sqlmock.NewRows(profileColumns()).
			AddRow("fintech", "seed", "500k", "Bangalore", "b2b", "120k", "2500", "40", "8"))

	repo := NewProfileRepository(db, nil, time.Minute, logger.NewTestLogger(t))

	profile, err := repo.GetStartupProfile(context.Background(), "startup-1")
	require.NoError(t, err)
	assert.Equal(t, "fintech", profile.Domain)
	assert.Equal(t, match.FlexValue("500k"), profile.Ask)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStartupProfileNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT domain, stage").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(profileColumns()))

	repo := NewProfileRepository(db, nil, time.Minute, logger.NewTestLogger(t))

	_, err = repo.GetStartupProfile(context.Background(), "missing")
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeProfileNotFound, stdErr.Code)
}

func TestGetStartupProfileCacheHit(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cached, err := json.Marshal(match.StartupProfile{Domain: "healthtech", Stage: "series-a"})
	require.NoError(t, err)
	require.NoError(t, mr.Set("startup:profile:startup-2", string(cached)))

	// No DB expectations: a cache hit must not touch Postgres.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileRepository(db, redisClient, time.Minute, logger.NewTestLogger(t))

	profile, err := repo.GetStartupProfile(context.Background(), "startup-2")
	require.NoError(t, err)
	assert.Equal(t, "healthtech", profile.Domain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStartupProfilePopulatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT domain, stage").
		WithArgs("startup-3").
		WillReturnRows(sqlmock.NewRows(profileColumns()).
			AddRow("saas", "seed", "1m", "Berlin", "", "", "", "", ""))

	repo := NewProfileRepository(db, redisClient, time.Minute, logger.NewTestLogger(t))

	_, err = repo.GetStartupProfile(context.Background(), "startup-3")
	require.NoError(t, err)

	assert.True(t, mr.Exists("startup:profile:startup-3"))
}
