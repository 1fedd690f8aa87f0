package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livraria-app/livraria/internal/tasks"
)

// TasksController exposes on-demand maintenance task enqueueing.
type TasksController struct {
	taskClient *tasks.Client
}

// NewTasksController creates a new tasks controller.
func NewTasksController(taskClient *tasks.Client) *TasksController {
	return &TasksController{taskClient: taskClient}
}

// EnqueueCleanup schedules an orphan cleanup run.
// POST /api/tasks/cleanup
func (tc *TasksController) EnqueueCleanup(c *gin.Context) {
	if tc.taskClient == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled"})
		return
	}

	if _, err := tc.taskClient.Add(tasks.CleanupOrphanCatalogTask{}).Save(); err != nil {
		respondInternalError(c, err, "enqueue cleanup")
		return
	}

	respondAccepted(c, "orphan cleanup scheduled")
}
