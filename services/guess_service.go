package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"poolbet/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const guessCountVerKey = "guesses:count:ver"

var (
	ErrNotPoolParticipant = errors.New("You are not allowed to create a guess inside this pool")
	ErrGuessAlreadySent   = errors.New("You already sent a guess to this game on this pool")
	ErrGameNotFound       = errors.New("Game not found")
	ErrGameAlreadyStarted = errors.New("You cannot send guesses after the game date")
)

type GuessService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewGuessService(db *gorm.DB, redis *redis.Client) *GuessService {
	return &GuessService{
		db:    db,
		redis: redis,
	}
}

type CreateGuessRequest struct {
	FirstTeamPoints  *int `json:"firstTeamPoints" binding:"required"`
	SecondTeamPoints *int `json:"secondTeamPoints" binding:"required"`
}

// CountGuesses returns the total number of guesses across all pools. Counts
// are cached in Redis under the current count-version; creation bumps the
// version, so a snapshot computed before a create is stored under a version
// nobody reads anymore and can never be served stale.
func (s *GuessService) CountGuesses(ctx context.Context) (int64, error) {
	ver := s.countVersion(ctx)
	if ver != "" {
		if cached, ok := s.getCachedCount(ctx, ver); ok {
			return cached, nil
		}
	}

	var count int64
	if err := s.db.Model(&models.Guess{}).Count(&count).Error; err != nil {
		return 0, err
	}

	if ver != "" {
		s.setCachedCount(ctx, ver, count)
	}
	return count, nil
}

// CreateGuess applies the submission rules in order, each short-circuiting
// with its own rejection. The order is part of the contract: a request that
// violates several rules must always see the first violation's message.
func (s *GuessService) CreateGuess(ctx context.Context, userID, poolID, gameID string, req *CreateGuessRequest) error {
	var participant models.Participant
	err := s.db.Where("user_id = ? AND pool_id = ?", userID, poolID).First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotPoolParticipant
		}
		return err
	}

	var existing models.Guess
	err = s.db.Where("participant_id = ? AND game_id = ?", participant.ID, gameID).First(&existing).Error
	if err == nil {
		return ErrGuessAlreadySent
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var game models.Game
	err = s.db.Where("id = ?", gameID).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	if !game.Date.After(time.Now()) {
		return ErrGameAlreadyStarted
	}

	guess := models.Guess{
		ParticipantID:    participant.ID,
		GameID:           gameID,
		FirstTeamPoints:  *req.FirstTeamPoints,
		SecondTeamPoints: *req.SecondTeamPoints,
	}
	if err := s.db.Create(&guess).Error; err != nil {
		// A concurrent submission for the same (participant, game) hit the
		// unique index first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrGuessAlreadySent
		}
		return err
	}

	s.bumpCountVersion(ctx)
	return nil
}

// countVersion returns the current count-version, seeding it on first use.
// An empty version disables the cache for the request.
func (s *GuessService) countVersion(ctx context.Context) string {
	if s.redis == nil {
		return ""
	}

	ver, err := s.redis.Get(ctx, guessCountVerKey).Result()
	if err == redis.Nil {
		if err := s.redis.SetNX(ctx, guessCountVerKey, 1, 0).Err(); err != nil {
			log.Printf("Failed to seed guess count version: %v", err)
			return ""
		}
		ver, err = s.redis.Get(ctx, guessCountVerKey).Result()
	}
	if err != nil {
		log.Printf("Redis error getting guess count version: %v", err)
		return ""
	}
	return ver
}

func countKey(ver string) string {
	return "guesses:count:" + ver
}

func (s *GuessService) getCachedCount(ctx context.Context, ver string) (int64, bool) {
	data, err := s.redis.Get(ctx, countKey(ver)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting guess count: %v", err)
		}
		return 0, false
	}

	count, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		log.Printf("Failed to parse cached guess count %q: %v", data, err)
		return 0, false
	}
	return count, true
}

func (s *GuessService) setCachedCount(ctx context.Context, ver string, count int64) {
	if err := s.redis.Set(ctx, countKey(ver), count, time.Hour).Err(); err != nil {
		log.Printf("Failed to cache guess count: %v", err)
	}
}

// bumpCountVersion retires every cached count snapshot, including ones a
// concurrent reader has computed but not stored yet.
func (s *GuessService) bumpCountVersion(ctx context.Context) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Incr(ctx, guessCountVerKey).Err(); err != nil {
		log.Printf("Failed to bump guess count version: %v", err)
	}
}
