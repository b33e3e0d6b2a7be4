package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guess struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	ParticipantID    string    `json:"participant_id" gorm:"not null;uniqueIndex:idx_guess_participant_game"`
	GameID           string    `json:"game_id" gorm:"not null;uniqueIndex:idx_guess_participant_game"`
	FirstTeamPoints  int       `json:"first_team_points" gorm:"not null"`
	SecondTeamPoints int       `json:"second_team_points" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`

	// Relationships
	Participant Participant `json:"participant,omitempty"`
	Game        Game        `json:"game,omitempty"`
}

func (g *Guess) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
