package models

type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ProjectID   uint   `gorm:"not null;index" json:"projectId"` // Foreign key to the Project
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Support     string `json:"support"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	Status      string `gorm:"not null" json:"status"` // "not-started", "in-progress", "completed"
}
