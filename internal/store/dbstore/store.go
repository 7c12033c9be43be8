// Package dbstore backs the storage interface with Postgres through GORM.
package dbstore

import (
	"errors"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/store"
	"gorm.io/gorm"
)

type Store struct {
	conn *gorm.DB
}

func New(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

// Users

func (s *Store) FindUserByEmail(email string) (models.User, error) {
	var user models.User

	if err := s.conn.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, translate(err)
	}

	return user, nil
}

func (s *Store) FindUserByID(id uint) (models.User, error) {
	var user models.User

	if err := s.conn.First(&user, id).Error; err != nil {
		return models.User{}, translate(err)
	}

	return user, nil
}

func (s *Store) InsertUser(user models.User) (models.User, error) {
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		var existing models.User

		err := tx.Where("email = ?", user.Email).First(&existing).Error

		if err == nil {
			return store.ErrDuplicateEmail
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&user).Error
	})

	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (s *Store) UpdateUser(id uint, update store.UserUpdate) (models.User, error) {
	var user models.User

	err := s.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return translate(err)
		}

		updates := make(map[string]interface{})

		if update.Name != "" {
			updates["name"] = update.Name
		}

		if update.Email != "" && update.Email != user.Email {
			var existing models.User

			err := tx.Where("email = ? AND id != ?", update.Email, id).First(&existing).Error

			if err == nil {
				return store.ErrDuplicateEmail
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			updates["email"] = update.Email
		}

		if update.Role != "" {
			updates["role"] = update.Role
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&user, id).Error
	})

	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (s *Store) DeleteUser(id uint) error {
	result := s.conn.Delete(&models.User{}, id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User

	if err := s.conn.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *Store) CountUsers() (int, error) {
	var count int64

	if err := s.conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// Projects

func (s *Store) ListProjects() ([]models.Project, error) {
	var projects []models.Project

	if err := s.conn.Preload("Tasks").Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].Tasks == nil {
			projects[i].Tasks = []models.Task{}
		}
	}

	return projects, nil
}

func (s *Store) FindProjectByID(id uint) (models.Project, error) {
	var project models.Project

	if err := s.conn.Preload("Tasks").First(&project, id).Error; err != nil {
		return models.Project{}, translate(err)
	}

	if project.Tasks == nil {
		project.Tasks = []models.Task{}
	}

	return project, nil
}

func (s *Store) InsertProject(project models.Project) (models.Project, error) {
	if err := s.conn.Create(&project).Error; err != nil {
		return models.Project{}, err
	}

	project.Tasks = []models.Task{}

	return project, nil
}

func (s *Store) UpdateProject(id uint, project models.Project) (models.Project, error) {
	var existing models.Project

	if err := s.conn.First(&existing, id).Error; err != nil {
		return models.Project{}, translate(err)
	}

	updates := make(map[string]interface{})

	if project.Name != "" {
		updates["name"] = project.Name
	}

	if project.Description != "" {
		updates["description"] = project.Description
	}

	if project.StartDate != "" {
		updates["start_date"] = project.StartDate
	}

	if project.DueDate != "" {
		updates["due_date"] = project.DueDate
	}

	if project.Manager != "" {
		updates["manager"] = project.Manager
	}

	if len(updates) > 0 {
		if err := s.conn.Model(&existing).Updates(updates).Error; err != nil {
			return models.Project{}, err
		}
	}

	return s.FindProjectByID(id)
}

func (s *Store) DeleteProject(id uint) error {
	return s.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return store.ErrNotFound
		}

		return nil
	})
}

// Tasks

func (s *Store) ListTasksByProject(projectID uint) ([]models.Task, error) {
	var tasks []models.Task

	if err := s.conn.Where("project_id = ?", projectID).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	return tasks, nil
}

func (s *Store) FindTaskByID(id uint) (models.Task, error) {
	var task models.Task

	if err := s.conn.First(&task, id).Error; err != nil {
		return models.Task{}, translate(err)
	}

	return task, nil
}

func (s *Store) InsertTask(task models.Task) (models.Task, error) {
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		if err := tx.First(&project, task.ProjectID).Error; err != nil {
			return translate(err)
		}

		return tx.Create(&task).Error
	})

	if err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (s *Store) UpdateTask(id uint, task models.Task) (models.Task, error) {
	var existing models.Task

	err := s.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, id).Error; err != nil {
			return translate(err)
		}

		updates := make(map[string]interface{})

		if task.ProjectID != 0 && task.ProjectID != existing.ProjectID {
			var project models.Project

			if err := tx.First(&project, task.ProjectID).Error; err != nil {
				return translate(err)
			}

			updates["project_id"] = task.ProjectID
		}

		if task.Name != "" {
			updates["name"] = task.Name
		}

		if task.Description != "" {
			updates["description"] = task.Description
		}

		if task.Assignee != "" {
			updates["assignee"] = task.Assignee
		}

		if task.Support != "" {
			updates["support"] = task.Support
		}

		if task.StartDate != "" {
			updates["start_date"] = task.StartDate
		}

		if task.DueDate != "" {
			updates["due_date"] = task.DueDate
		}

		if task.Status != "" {
			updates["status"] = task.Status
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&existing, id).Error
	})

	if err != nil {
		return models.Task{}, err
	}

	return existing, nil
}

func (s *Store) DeleteTask(id uint) error {
	result := s.conn.Delete(&models.Task{}, id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}

	return err
}
