package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Participant struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_participant_user_pool"`
	PoolID    string    `json:"pool_id" gorm:"not null;uniqueIndex:idx_participant_user_pool"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User    User    `json:"user,omitempty"`
	Pool    Pool    `json:"pool,omitempty"`
	Guesses []Guess `json:"guesses,omitempty" gorm:"foreignKey:ParticipantID"`
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
