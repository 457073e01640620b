package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"plantonize/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the clear-text password of every fixture user.
const TestPassword = "Plantao-Seguro-2024"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a collaborator with a unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, models.RoleCollaborator)
}

// CreateTestAdmin creates an administrator with a unique username.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, models.RoleAdmin)
}

// CreateTestUserWithRole creates a user with the given role and a unique username.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("%s%d", role, nextID()), role)
}

// CreateTestUserWithUsername creates a user with the given username and role.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEvolution creates an evolution written by creator and assigned to
// assignee (nil leaves it unassigned), with its creation log entry.
func CreateTestEvolution(t *testing.T, db *gorm.DB, creator, assignee *models.User) *models.Evolution {
	t.Helper()

	n := nextID()
	evolution := &models.Evolution{
		Title:       fmt.Sprintf("Evolução %d", n),
		Content:     fmt.Sprintf("Paciente estável, plantão %d.", n),
		Category:    "UPA",
		CreatedByID: &creator.ID,
	}
	if assignee != nil {
		evolution.AssignedToID = &assignee.ID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(evolution).Error; err != nil {
			return err
		}
		return tx.Create(&models.EvolutionLog{
			EvolutionID: evolution.ID,
			UserID:      &creator.ID,
			Kind:        models.LogKindCreation,
		}).Error
	})
	if err != nil {
		t.Fatalf("failed to create test evolution: %v", err)
	}
	return evolution
}

// CountLogs returns how many log entries exist for an evolution.
func CountLogs(t *testing.T, db *gorm.DB, evolutionID string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.EvolutionLog{}).Where("evolution_id = ?", evolutionID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	return count
}

// ReloadEvolution reads the stored evolution, bypassing any service logic.
func ReloadEvolution(t *testing.T, db *gorm.DB, id string) *models.Evolution {
	t.Helper()

	var evolution models.Evolution
	if err := db.First(&evolution, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload evolution: %v", err)
	}
	return &evolution
}
