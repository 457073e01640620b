package services

import (
	"gorm.io/gorm"

	apperrors "plantonize/internal/errors"
	"plantonize/internal/models"
)

// auditService handles the evolution change history.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Record appends a log entry on tx. A failure is returned to the caller so the
// surrounding transaction is rolled back with it.
func (s *auditService) Record(tx *gorm.DB, evolutionID, userID string, kind models.LogKind) (*models.EvolutionLog, error) {
	entry := &models.EvolutionLog{
		EvolutionID: evolutionID,
		Kind:        kind,
	}
	if userID != "" {
		entry.UserID = &userID
	}

	if err := tx.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// ListForEvolution returns an evolution's entries, oldest first.
func (s *auditService) ListForEvolution(evolutionID string) ([]models.EvolutionLog, error) {
	var entries []models.EvolutionLog
	if err := s.db.Scopes(logsInOrder).
		Preload("User").
		Where("evolution_id = ?", evolutionID).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// logsInOrder orders log entries by time of write. IDs are UUIDv7, so they
// break ties in write order.
func logsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("occurred_at ASC").Order("id ASC")
}
