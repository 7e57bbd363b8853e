package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freewen/internal/repository"
	"freewen/internal/transport/http/middleware"
	"freewen/internal/transport/http/response"
)

// HistoryHandler serves the workspace's archived generations from MySQL.
// Records is nil when the archive pipeline is disabled.
type HistoryHandler struct {
	records *repository.PlanRecordRepository
}

func NewHistoryHandler(records *repository.PlanRecordRepository) *HistoryHandler {
	return &HistoryHandler{records: records}
}

func (h *HistoryHandler) List(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}
	if h.records == nil {
		response.Error(c, http.StatusNotFound, response.CodeArchiveDisabled, "plan archive is disabled")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.records.ListByWorkspaceID(workspaceID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list plan history failed")
		return
	}
	response.OK(c, gin.H{"records": records})
}
