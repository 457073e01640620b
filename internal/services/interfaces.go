package services

import (
	"gorm.io/gorm"

	"plantonize/internal/models"
	"plantonize/internal/pagination"
)

// Requester is the authenticated identity a request acts as.
type Requester struct {
	ID       string
	Username string
	Role     models.Role
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string, role models.Role) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	UpdateUserRole(requester Requester, userID string, role models.Role) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// EvolutionFilter holds optional filter parameters for listing evolutions.
// Filters only narrow an administrator's view; collaborators always see
// exactly the evolutions assigned to them.
type EvolutionFilter struct {
	AssigneeID *string
}

// Assignment describes a change of assignee. Set distinguishes "leave as is"
// from "assign to UserID", where a nil UserID unassigns the evolution.
type Assignment struct {
	Set    bool
	UserID *string
}

// EvolutionInput carries the client-editable evolution fields. Nil fields are
// left unchanged on update and are required on create.
type EvolutionInput struct {
	Title      *string
	Content    *string
	Category   *string
	AssignedTo Assignment
}

// EvolutionServicer defines the contract for role-scoped evolution access.
type EvolutionServicer interface {
	ListEvolutions(requester Requester, filter EvolutionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Evolution], error)
	GetEvolution(requester Requester, evolutionID string) (*models.Evolution, error)
	CreateEvolution(requester Requester, input EvolutionInput) (*models.Evolution, error)
	UpdateEvolution(requester Requester, evolutionID string, input EvolutionInput) (*models.Evolution, error)
	DeleteEvolution(requester Requester, evolutionID string) error
	ListEvolutionLogs(requester Requester, evolutionID string) ([]models.EvolutionLog, error)
}

// AuditServicer defines the contract for the evolution change history.
// Record must run on the transaction that mutates the evolution so that both
// commit or roll back together.
type AuditServicer interface {
	Record(tx *gorm.DB, evolutionID, userID string, kind models.LogKind) (*models.EvolutionLog, error)
	ListForEvolution(evolutionID string) ([]models.EvolutionLog, error)
}
