package models

import (
	"time"

	"gorm.io/gorm"
)

// LogKind is the type of change recorded in an EvolutionLog.
type LogKind string

const (
	LogKindCreation LogKind = "criação"
	LogKindEdit     LogKind = "edição"
)

// EvolutionLog is an immutable entry of the evolution's change history.
type EvolutionLog struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	EvolutionID string    `gorm:"type:uuid;not null;index"`
	UserID      *string   `gorm:"type:uuid;index"`
	Kind        LogKind   `gorm:"size:10;not null"`
	OccurredAt  time.Time `gorm:"not null;index"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate assigns the ID and defaults OccurredAt to the time of write.
func (l *EvolutionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		l.ID = id
	}
	if l.OccurredAt.IsZero() {
		l.OccurredAt = time.Now()
	}
	return nil
}
