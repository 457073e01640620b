package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "plantonize/internal/errors"
	"plantonize/internal/logger"
	"plantonize/internal/models"
	"plantonize/internal/pagination"
)

// evolutionService scopes evolution access by role and keeps the change
// history in step with every mutation.
type evolutionService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewEvolutionService creates a new EvolutionServicer.
func NewEvolutionService(db *gorm.DB, audit AuditServicer) EvolutionServicer {
	return &evolutionService{db: db, audit: audit}
}

// visibleTo returns the scope selecting the evolutions requester may see:
// administrators see every evolution, collaborators only those assigned to them.
func visibleTo(requester Requester) (func(*gorm.DB) *gorm.DB, error) {
	switch requester.Role {
	case models.RoleAdmin:
		return func(db *gorm.DB) *gorm.DB { return db }, nil
	case models.RoleCollaborator:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("assigned_to_id = ?", requester.ID)
		}, nil
	}
	return nil, apperrors.ErrForbidden
}

// evolutionsInOrder orders by creation time, ties broken by the UUIDv7 id.
func evolutionsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// withLogs preloads the change history, oldest first, with acting users.
func withLogs(db *gorm.DB) *gorm.DB {
	return db.Preload("Logs", logsInOrder).Preload("Logs.User")
}

// findVisible loads one evolution from the requester's visible set. Anything
// outside it is reported as not found.
func (s *evolutionService) findVisible(db *gorm.DB, requester Requester, evolutionID string) (*models.Evolution, error) {
	scope, err := visibleTo(requester)
	if err != nil {
		return nil, err
	}

	var evolution models.Evolution
	if err := db.Scopes(scope).First(&evolution, "id = ?", evolutionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEvolutionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &evolution, nil
}

// ListEvolutions returns the requester's visible evolutions. The assignee
// filter only applies to administrators.
func (s *evolutionService) ListEvolutions(requester Requester, filter EvolutionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Evolution], error) {
	scope, err := visibleTo(requester)
	if err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.Evolution{}).Scopes(scope)
	if requester.Role.IsAdmin() && filter.AssigneeID != nil {
		base = base.Where("assigned_to_id = ?", *filter.AssigneeID)
	}
	base = base.Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var evolutions []models.Evolution
	if err := base.Scopes(evolutionsInOrder, withLogs, pagination.Paginate(page)).Find(&evolutions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(evolutions, page, totalItems)
	return &result, nil
}

// GetEvolution returns a visible evolution with its change history. The
// assigned collaborator's first read marks it as viewed; only the viewed
// column is written, so the edit date is left untouched.
func (s *evolutionService) GetEvolution(requester Requester, evolutionID string) (*models.Evolution, error) {
	evolution, err := s.findVisible(s.db.Scopes(withLogs), requester, evolutionID)
	if err != nil {
		return nil, err
	}

	if requester.Role == models.RoleCollaborator && evolution.IsAssignedTo(requester.ID) && !evolution.Viewed {
		res := s.db.Model(&models.Evolution{}).
			Where("id = ? AND viewed = ?", evolution.ID, false).
			UpdateColumn("viewed", true)
		if res.Error != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected > 0 {
			logger.Get().Infow("evolution viewed", "evolution_id", evolution.ID, "user_id", requester.ID)
		}
		evolution.Viewed = true
	}

	return evolution, nil
}

// CreateEvolution stores a new evolution authored by the requester together
// with its creation log entry.
func (s *evolutionService) CreateEvolution(requester Requester, input EvolutionInput) (*models.Evolution, error) {
	if _, err := visibleTo(requester); err != nil {
		return nil, err
	}

	if missing := missingFields(input); len(missing) > 0 {
		return nil, apperrors.WithDetails(apperrors.ErrInvalidInput, missing)
	}

	evolution := &models.Evolution{
		Title:       strings.TrimSpace(*input.Title),
		Content:     *input.Content,
		Category:    strings.TrimSpace(*input.Category),
		CreatedByID: &requester.ID,
	}
	if input.AssignedTo.Set {
		evolution.AssignedToID = input.AssignedTo.UserID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureAssigneeExists(tx, evolution.AssignedToID); err != nil {
			return err
		}
		if err := tx.Omit("CreatedBy", "AssignedTo", "Logs").Create(evolution).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err := s.audit.Record(tx, evolution.ID, requester.ID, models.LogKindCreation)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.reload(evolution.ID)
}

// UpdateEvolution applies the given fields to a visible evolution and appends
// an edit log entry. The author and the viewed flag are not client-editable.
func (s *evolutionService) UpdateEvolution(requester Requester, evolutionID string, input EvolutionInput) (*models.Evolution, error) {
	if invalid := blankFields(input); len(invalid) > 0 {
		return nil, apperrors.WithDetails(apperrors.ErrInvalidInput, invalid)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		evolution, err := s.findVisible(tx, requester, evolutionID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if input.Title != nil {
			updates["title"] = strings.TrimSpace(*input.Title)
		}
		if input.Content != nil {
			updates["content"] = *input.Content
		}
		if input.Category != nil {
			updates["category"] = strings.TrimSpace(*input.Category)
		}
		if input.AssignedTo.Set {
			if err := ensureAssigneeExists(tx, input.AssignedTo.UserID); err != nil {
				return err
			}
			updates["assigned_to_id"] = input.AssignedTo.UserID
		}

		if err := tx.Model(&models.Evolution{}).Where("id = ?", evolution.ID).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err = s.audit.Record(tx, evolution.ID, requester.ID, models.LogKindEdit)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.reload(evolutionID)
}

// DeleteEvolution removes a visible evolution and its change history.
func (s *evolutionService) DeleteEvolution(requester Requester, evolutionID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		evolution, err := s.findVisible(tx, requester, evolutionID)
		if err != nil {
			return err
		}
		if err := tx.Where("evolution_id = ?", evolution.ID).Delete(&models.EvolutionLog{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&models.Evolution{}, "id = ?", evolution.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		logger.Get().Infow("evolution deleted", "evolution_id", evolution.ID, "deleted_by", requester.ID)
		return nil
	})
}

// ListEvolutionLogs returns the change history of a visible evolution. Unlike
// GetEvolution it never marks the evolution as viewed.
func (s *evolutionService) ListEvolutionLogs(requester Requester, evolutionID string) ([]models.EvolutionLog, error) {
	evolution, err := s.findVisible(s.db, requester, evolutionID)
	if err != nil {
		return nil, err
	}
	return s.audit.ListForEvolution(evolution.ID)
}

func (s *evolutionService) reload(evolutionID string) (*models.Evolution, error) {
	var evolution models.Evolution
	if err := s.db.Scopes(withLogs).First(&evolution, "id = ?", evolutionID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &evolution, nil
}

// ensureAssigneeExists rejects assignments to unknown users. A nil id means
// unassigned and is always accepted.
func ensureAssigneeExists(tx *gorm.DB, userID *string) error {
	if userID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", *userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.WithDetails(apperrors.ErrInvalidAssignee, map[string]string{
			"atribuido_a": "User " + *userID + " does not exist.",
		})
	}
	return nil
}

func missingFields(input EvolutionInput) map[string]string {
	details := blankFields(input)
	for field, value := range map[string]*string{"titulo": input.Title, "conteudo": input.Content, "categoria": input.Category} {
		if value == nil {
			details[field] = "This field is required."
		}
	}
	return details
}

func blankFields(input EvolutionInput) map[string]string {
	details := map[string]string{}
	for field, value := range map[string]*string{"titulo": input.Title, "conteudo": input.Content, "categoria": input.Category} {
		if value != nil && strings.TrimSpace(*value) == "" {
			details[field] = "This field may not be blank."
		}
	}
	return details
}
