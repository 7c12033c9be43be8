// Package jsonstore persists each collection as a JSON array in its own
// file, rewritten wholesale on every mutation. A single lock serializes
// id assignment and the project/task pairing.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/store"
)

const (
	usersFile    = "users.json"
	projectsFile = "projects.json"
	tasksFile    = "tasks.json"
)

// userRecord is the on-disk user shape. The credential hash is stored
// under "password" and is converted away before a user leaves the store.
type userRecord struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type projectRecord struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	Manager     string `json:"manager"`
}

type taskRecord struct {
	ID          uint   `json:"id"`
	ProjectID   uint   `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Support     string `json:"support"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

type Store struct {
	mu       sync.RWMutex
	dir      string
	users    []userRecord
	projects []projectRecord
	tasks    []taskRecord
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{dir: dir}

	if err := loadFile(filepath.Join(dir, usersFile), &s.users); err != nil {
		return nil, err
	}

	if err := loadFile(filepath.Join(dir, projectsFile), &s.projects); err != nil {
		return nil, err
	}

	if err := loadFile(filepath.Join(dir, tasksFile), &s.tasks); err != nil {
		return nil, err
	}

	return s, nil
}

func loadFile(path string, out any) error {
	data, err := os.ReadFile(path)

	if os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func (s *Store) saveFile(name string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")

	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

// nextID assigns max existing id + 1, or 1 when the collection is
// empty. Callers must hold the write lock.
func nextID[T any](records []T, id func(T) uint) uint {
	var max uint

	for _, record := range records {
		if id(record) > max {
			max = id(record)
		}
	}

	return max + 1
}

// Users

func (s *Store) FindUserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.users {
		if record.Email == email {
			return userFromRecord(record), nil
		}
	}

	return models.User{}, store.ErrNotFound
}

func (s *Store) FindUserByID(id uint) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.users {
		if record.ID == id {
			return userFromRecord(record), nil
		}
	}

	return models.User{}, store.ErrNotFound
}

func (s *Store) InsertUser(user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.users {
		if record.Email == user.Email {
			return models.User{}, store.ErrDuplicateEmail
		}
	}

	record := userRecord{
		ID:       nextID(s.users, func(r userRecord) uint { return r.ID }),
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		Password: user.PasswordHash,
	}

	s.users = append(s.users, record)

	if err := s.saveFile(usersFile, s.users); err != nil {
		s.users = s.users[:len(s.users)-1]
		return models.User{}, err
	}

	return userFromRecord(record), nil
}

func (s *Store) UpdateUser(id uint, update store.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1

	for i, record := range s.users {
		if record.ID == id {
			index = i
			break
		}
	}

	if index == -1 {
		return models.User{}, store.ErrNotFound
	}

	if update.Email != "" && update.Email != s.users[index].Email {
		for _, record := range s.users {
			if record.Email == update.Email {
				return models.User{}, store.ErrDuplicateEmail
			}
		}
	}

	updated := s.users[index]

	if update.Name != "" {
		updated.Name = update.Name
	}

	if update.Email != "" {
		updated.Email = update.Email
	}

	if update.Role != "" {
		updated.Role = update.Role
	}

	previous := s.users[index]
	s.users[index] = updated

	if err := s.saveFile(usersFile, s.users); err != nil {
		s.users[index] = previous
		return models.User{}, err
	}

	return userFromRecord(updated), nil
}

func (s *Store) DeleteUser(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, record := range s.users {
		if record.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return s.saveFile(usersFile, s.users)
		}
	}

	return store.ErrNotFound
}

func (s *Store) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))

	for _, record := range s.users {
		users = append(users, userFromRecord(record))
	}

	return users, nil
}

func (s *Store) CountUsers() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users), nil
}

// Projects

func (s *Store) ListProjects() ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0, len(s.projects))

	for _, record := range s.projects {
		projects = append(projects, s.projectFromRecord(record))
	}

	return projects, nil
}

func (s *Store) FindProjectByID(id uint) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.projects {
		if record.ID == id {
			return s.projectFromRecord(record), nil
		}
	}

	return models.Project{}, store.ErrNotFound
}

func (s *Store) InsertProject(project models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := projectRecord{
		ID:          nextID(s.projects, func(r projectRecord) uint { return r.ID }),
		Name:        project.Name,
		Description: project.Description,
		StartDate:   project.StartDate,
		DueDate:     project.DueDate,
		Manager:     project.Manager,
	}

	s.projects = append(s.projects, record)

	if err := s.saveFile(projectsFile, s.projects); err != nil {
		s.projects = s.projects[:len(s.projects)-1]
		return models.Project{}, err
	}

	return s.projectFromRecord(record), nil
}

func (s *Store) UpdateProject(id uint, project models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, record := range s.projects {
		if record.ID != id {
			continue
		}

		updated := record

		if project.Name != "" {
			updated.Name = project.Name
		}

		if project.Description != "" {
			updated.Description = project.Description
		}

		if project.StartDate != "" {
			updated.StartDate = project.StartDate
		}

		if project.DueDate != "" {
			updated.DueDate = project.DueDate
		}

		if project.Manager != "" {
			updated.Manager = project.Manager
		}

		s.projects[i] = updated

		if err := s.saveFile(projectsFile, s.projects); err != nil {
			s.projects[i] = record
			return models.Project{}, err
		}

		return s.projectFromRecord(updated), nil
	}

	return models.Project{}, store.ErrNotFound
}

func (s *Store) DeleteProject(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1

	for i, record := range s.projects {
		if record.ID == id {
			index = i
			break
		}
	}

	if index == -1 {
		return store.ErrNotFound
	}

	remaining := make([]taskRecord, 0, len(s.tasks))

	for _, task := range s.tasks {
		if task.ProjectID != id {
			remaining = append(remaining, task)
		}
	}

	previousTasks := s.tasks
	previousProjects := s.projects

	s.tasks = remaining
	s.projects = append(s.projects[:index:index], s.projects[index+1:]...)

	if err := s.saveFile(tasksFile, s.tasks); err != nil {
		s.tasks = previousTasks
		s.projects = previousProjects
		return err
	}

	return s.saveFile(projectsFile, s.projects)
}

// Tasks

func (s *Store) ListTasksByProject(projectID uint) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tasksForProject(projectID), nil
}

func (s *Store) FindTaskByID(id uint) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.tasks {
		if record.ID == id {
			return taskFromRecord(record), nil
		}
	}

	return models.Task{}, store.ErrNotFound
}

func (s *Store) InsertTask(task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.projectExists(task.ProjectID) {
		return models.Task{}, store.ErrNotFound
	}

	record := taskRecord{
		ID:          nextID(s.tasks, func(r taskRecord) uint { return r.ID }),
		ProjectID:   task.ProjectID,
		Name:        task.Name,
		Description: task.Description,
		Assignee:    task.Assignee,
		Support:     task.Support,
		StartDate:   task.StartDate,
		DueDate:     task.DueDate,
		Status:      task.Status,
	}

	s.tasks = append(s.tasks, record)

	if err := s.saveFile(tasksFile, s.tasks); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return models.Task{}, err
	}

	return taskFromRecord(record), nil
}

func (s *Store) UpdateTask(id uint, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, record := range s.tasks {
		if record.ID != id {
			continue
		}

		updated := record

		if task.ProjectID != 0 && task.ProjectID != record.ProjectID {
			if !s.projectExists(task.ProjectID) {
				return models.Task{}, store.ErrNotFound
			}
			updated.ProjectID = task.ProjectID
		}

		if task.Name != "" {
			updated.Name = task.Name
		}

		if task.Description != "" {
			updated.Description = task.Description
		}

		if task.Assignee != "" {
			updated.Assignee = task.Assignee
		}

		if task.Support != "" {
			updated.Support = task.Support
		}

		if task.StartDate != "" {
			updated.StartDate = task.StartDate
		}

		if task.DueDate != "" {
			updated.DueDate = task.DueDate
		}

		if task.Status != "" {
			updated.Status = task.Status
		}

		s.tasks[i] = updated

		if err := s.saveFile(tasksFile, s.tasks); err != nil {
			s.tasks[i] = record
			return models.Task{}, err
		}

		return taskFromRecord(updated), nil
	}

	return models.Task{}, store.ErrNotFound
}

func (s *Store) DeleteTask(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, record := range s.tasks {
		if record.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return s.saveFile(tasksFile, s.tasks)
		}
	}

	return store.ErrNotFound
}

func (s *Store) projectExists(id uint) bool {
	for _, record := range s.projects {
		if record.ID == id {
			return true
		}
	}

	return false
}

func (s *Store) tasksForProject(projectID uint) []models.Task {
	tasks := make([]models.Task, 0)

	for _, record := range s.tasks {
		if record.ProjectID == projectID {
			tasks = append(tasks, taskFromRecord(record))
		}
	}

	return tasks
}

func userFromRecord(record userRecord) models.User {
	return models.User{
		ID:           record.ID,
		Name:         record.Name,
		Email:        record.Email,
		Role:         record.Role,
		PasswordHash: record.Password,
	}
}

func (s *Store) projectFromRecord(record projectRecord) models.Project {
	return models.Project{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		StartDate:   record.StartDate,
		DueDate:     record.DueDate,
		Manager:     record.Manager,
		Tasks:       s.tasksForProject(record.ID),
	}
}

func taskFromRecord(record taskRecord) models.Task {
	return models.Task{
		ID:          record.ID,
		ProjectID:   record.ProjectID,
		Name:        record.Name,
		Description: record.Description,
		Assignee:    record.Assignee,
		Support:     record.Support,
		StartDate:   record.StartDate,
		DueDate:     record.DueDate,
		Status:      record.Status,
	}
}
