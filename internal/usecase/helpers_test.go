package usecase_test

import (
	"errors"
	"io"
	"testing"

	"medikeep/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var errDBDown = errors.New("database unavailable")

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestDB returns a gorm connection backed by sqlmock. Usecases that only
// pass the *gorm.DB through to mocked repositories never touch it; the
// sqlmock expectations matter only for transaction begin/commit/rollback.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// newTestHub runs a hub against an in-process redis so Publish calls made by
// the usecases have somewhere to go.
func newTestHub(t *testing.T) *service.Hub {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	hub := service.NewHub(client, newTestLogger())
	t.Cleanup(hub.Stop)
	return hub
}
