package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/store"
	"github.com/taskhub-dev/taskhub/internal/types"
)

type TaskHandler struct {
	store store.TaskStore
}

func NewTaskHandler(st store.TaskStore) *TaskHandler {
	return &TaskHandler{store: st}
}

type TaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Support     string `json:"support"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
	ProjectID   uint   `json:"projectId"`
}

func (h *TaskHandler) CreateTask(ctx *gin.Context) {
	var req TaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Status == "" {
		req.Status = types.TaskNotStarted
	}

	task, err := h.store.InsertTask(models.Task{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Assignee:    req.Assignee,
		Support:     req.Support,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(ctx *gin.Context) {
	id, err := parseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var req TaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.store.UpdateTask(id, models.Task{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Assignee:    req.Assignee,
		Support:     req.Support,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.Printf("Failed to update task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(ctx *gin.Context) {
	id, err := parseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := h.store.DeleteTask(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
