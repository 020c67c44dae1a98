package repository

import (
	"database/sql"
	"errors"

	"github.com/classtrack-dev/classtrack/backend/internal/config"
	"github.com/classtrack-dev/classtrack/backend/internal/domain"
)

// ErrDuplicateUsername is returned by CreateUser when the username is
// already taken. Absence is reported as sql.ErrNoRows throughout.
var ErrDuplicateUsername = errors.New("username already in use")

// Store is the persistence surface the handlers depend on. Repository
// implements it over PostgreSQL; tests substitute an in-memory fake.
type Store interface {
	CreateUser(user *domain.User) error
	GetUserByID(id int64) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
	GetAllUsers() ([]*domain.User, error)
	UpdateUserPassword(id int64, passwordHash string) error

	CreateAssignment(assignment *domain.Assignment) error
	GetAssignmentByID(id int64) (*domain.Assignment, error)
	GetAllAssignments(orderColumn string, desc bool) ([]*domain.Assignment, error)
	GetAssignmentsByUserID(userID int64) ([]*domain.Assignment, error)
	UpdateAssignment(assignment *domain.Assignment) error
	DeleteAssignment(id int64) error
}

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
