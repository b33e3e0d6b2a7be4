package services

import (
	"fmt"
	"testing"
	"time"

	"poolbet/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema.
// The named shared-cache DSN keeps the pool's connections on one database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Pool{},
		&models.Participant{},
		&models.Game{},
		&models.Guess{},
	)
	require.NoError(t, err)

	return db
}

func seedParticipant(t *testing.T, db *gorm.DB) (models.User, models.Pool, models.Participant) {
	t.Helper()

	user := models.User{
		GoogleID:  "g-" + t.Name(),
		Name:      "Ann",
		Email:     "ann@example.com",
		AvatarURL: "https://example.com/ann.png",
	}
	require.NoError(t, db.Create(&user).Error)

	pool := models.Pool{
		Title:   "World Cup Office Pool",
		Code:    "WC-" + t.Name(),
		OwnerID: user.ID,
	}
	require.NoError(t, db.Create(&pool).Error)

	participant := models.Participant{
		UserID: user.ID,
		PoolID: pool.ID,
	}
	require.NoError(t, db.Create(&participant).Error)

	return user, pool, participant
}

func seedGame(t *testing.T, db *gorm.DB, date time.Time) models.Game {
	t.Helper()

	game := models.Game{
		Date:                  date,
		FirstTeamCountryCode:  "BR",
		SecondTeamCountryCode: "AR",
	}
	require.NoError(t, db.Create(&game).Error)

	return game
}
