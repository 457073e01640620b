package models

// Evolution is a categorized note assigned to a user. CreatedAt is the
// creation date and UpdatedAt the last edit date.
type Evolution struct {
	Base
	Title        string  `gorm:"size:200;not null"`
	Content      string  `gorm:"type:text;not null"`
	Category     string  `gorm:"size:100;not null"` // e.g. UPA, Posto, PS
	Viewed       bool    `gorm:"not null;default:false"`
	CreatedByID  *string `gorm:"type:uuid;index"`
	AssignedToID *string `gorm:"type:uuid;index"`

	// Relationships
	CreatedBy  *User          `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	AssignedTo *User          `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	Logs       []EvolutionLog `gorm:"foreignKey:EvolutionID;constraint:OnDelete:CASCADE"`
}

// IsAssignedTo reports whether userID is the evolution's assignee.
func (e *Evolution) IsAssignedTo(userID string) bool {
	return e.AssignedToID != nil && *e.AssignedToID == userID
}
