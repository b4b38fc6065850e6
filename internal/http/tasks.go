package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/cognicard/cognicard/internal/scheduler"
	"github.com/cognicard/cognicard/internal/tasks"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	client    *tasks.Client
	scheduler *scheduler.PhotoSyncScheduler
}

// NewTasksController creates a new TasksController.
func NewTasksController(client *tasks.Client, sched *scheduler.PhotoSyncScheduler) *TasksController {
	return &TasksController{
		client:    client,
		scheduler: sched,
	}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
// Returns the list of available task types that can be triggered.
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        "refresh_photo",
			Description: "Re-fetch and cache a single contact's photo",
			Queue:       "refresh_photo",
		},
		{
			Type:        "refresh_all_photos",
			Description: "Re-fetch cached photos for every stored contact",
			Queue:       "refresh_all_photos",
		},
		{
			Type:        "cleanup_audit_events",
			Description: "Delete audit events past the retention window",
			Queue:       "cleanup_audit_events",
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
// Returns the status of a specific task.
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTaskRequest is the request body for running a task.
type RunTaskRequest struct {
	// ContactID is required for the refresh_photo task
	ContactID string `json:"contact_id,omitempty"`
	// PhotoURL is required for the refresh_photo task
	PhotoURL string `json:"photo_url,omitempty"`
}

// RunTask handles POST /api/tasks/:id/run
// Manually triggers a task of the given type. The path segment shares the
// :id name with GetTaskStatus because gin requires sibling routes to agree
// on wildcard names.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("id")

	var req RunTaskRequest
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}

	var task backlite.Task
	switch taskType {
	case "refresh_photo":
		if req.ContactID == "" || req.PhotoURL == "" {
			respondBadRequest(c, "contact_id and photo_url are required for refresh_photo")
			return
		}
		task = tasks.RefreshPhotoTask{ContactID: req.ContactID, PhotoURL: req.PhotoURL}

	case "refresh_all_photos":
		// Prefer the scheduler's entry point when present so manual runs
		// and cron runs share the same path.
		if tc.scheduler != nil {
			if err := tc.scheduler.RunNow(); err != nil {
				respondInternalError(c, err, "run photo sync")
				return
			}
			c.JSON(http.StatusAccepted, gin.H{
				"success": true,
				"type":    taskType,
				"message": "task enqueued",
			})
			return
		}
		task = tasks.RefreshAllPhotosTask{}

	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	ids, err := tc.client.Add(task).Save()
	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": ids[0],
		"type":    taskType,
		"message": "task enqueued",
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
