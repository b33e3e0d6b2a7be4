package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Game struct {
	ID                    string    `json:"id" gorm:"primaryKey"`
	Date                  time.Time `json:"date" gorm:"not null"`
	FirstTeamCountryCode  string    `json:"first_team_country_code" gorm:"not null"`
	SecondTeamCountryCode string    `json:"second_team_country_code" gorm:"not null"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relationships
	Guesses []Guess `json:"guesses,omitempty" gorm:"foreignKey:GameID"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
