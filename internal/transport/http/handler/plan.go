package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freewen/internal/ai"
	"freewen/internal/planner"
	"freewen/internal/store"
	"freewen/internal/transport/http/middleware"
	"freewen/internal/transport/http/response"
)

type PlanHandler struct {
	planner  *planner.Service
	sessions *store.SessionStore
}

func NewPlanHandler(plannerService *planner.Service, sessions *store.SessionStore) *PlanHandler {
	return &PlanHandler{planner: plannerService, sessions: sessions}
}

// Generate runs the model for the named session's current configuration and
// replaces any previous plan. The call blocks until the model answers or
// times out; there is no retry.
func (h *PlanHandler) Generate(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	plan, err := h.planner.Generate(c.Request.Context(), workspaceID, c.Param("name"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		case errors.Is(err, planner.ErrMissingCities),
			errors.Is(err, planner.ErrInvalidDates),
			errors.Is(err, planner.ErrInvalidBudget):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, ai.ErrTimeout):
			response.Error(c, http.StatusGatewayTimeout, response.CodeUpstreamTimeout,
				"the travel model took too long to answer, please try again")
		case errors.Is(err, ai.ErrRateLimited), errors.Is(err, ai.ErrEmptyResponse):
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
		default:
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, "plan generation failed: "+err.Error())
		}
		return
	}

	response.OK(c, plan)
}

func (h *PlanHandler) Get(c *gin.Context) {
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
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, "no plan generated yet")
		return
	}
	response.OK(c, session.Plan)
}
