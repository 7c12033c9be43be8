package store

import (
	"errors"

	"github.com/taskhub-dev/taskhub/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserUpdate carries the mutable user fields. Credential material is
// deliberately absent: it cannot be changed through this path.
type UserUpdate struct {
	Name  string
	Email string
	Role  string
}

type UserStore interface {
	FindUserByEmail(email string) (models.User, error)
	FindUserByID(id uint) (models.User, error)
	InsertUser(user models.User) (models.User, error)
	UpdateUser(id uint, update UserUpdate) (models.User, error)
	DeleteUser(id uint) error
	ListUsers() ([]models.User, error)
	CountUsers() (int, error)
}

type ProjectStore interface {
	ListProjects() ([]models.Project, error)
	FindProjectByID(id uint) (models.Project, error)
	InsertProject(project models.Project) (models.Project, error)
	UpdateProject(id uint, project models.Project) (models.Project, error)
	// DeleteProject removes the project and every task referencing it.
	DeleteProject(id uint) error
}

type TaskStore interface {
	ListTasksByProject(projectID uint) ([]models.Task, error)
	FindTaskByID(id uint) (models.Task, error)
	// InsertTask fails with ErrNotFound when the owning project does not exist.
	InsertTask(task models.Task) (models.Task, error)
	UpdateTask(id uint, task models.Task) (models.Task, error)
	DeleteTask(id uint) error
}

// Store is the persistence boundary, selected at startup between the
// flat-file backend and the database backend.
type Store interface {
	UserStore
	ProjectStore
	TaskStore
}
