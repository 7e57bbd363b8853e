package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"freewen/internal/export"
	"freewen/internal/store"
	"freewen/internal/transport/http/middleware"
	"freewen/internal/transport/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	sessions *store.SessionStore
}

func NewExportHandler(sessions *store.SessionStore) *ExportHandler {
	return &ExportHandler{sessions: sessions}
}

// Plan streams the session's plan as an xlsx workbook download.
func (h *ExportHandler) Plan(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	session, err := h.sessions.Get(workspaceID, c.Param("name"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		return
	}
	if session.Plan == nil {
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, "no plan to export")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, session.Plan); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(session.Plan)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
