package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"freewen/internal/model"
	"freewen/internal/store"
	"freewen/internal/transport/http/middleware"
	"freewen/internal/transport/http/response"
)

const dateLayout = "2006-01-02"

type SessionHandler struct {
	sessions *store.SessionStore
}

type TripConfigRequest struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Travelers     int      `json:"travelers"`
	Budget        float64  `json:"budget"`
	Currency      string   `json:"currency"`
	Pace          string   `json:"pace"`
	Style         string   `json:"style"`
	Activities    []string `json:"activities"`
	Accommodation string   `json:"accommodation"`
	Food          string   `json:"food"`
}

type CreateSessionRequest struct {
	Name   string             `json:"name" binding:"required,max=128"`
	Config *TripConfigRequest `json:"config"`
}

type UpdateSessionRequest struct {
	Name   string             `json:"name" binding:"max=128"`
	Config *TripConfigRequest `json:"config"`
}

func NewSessionHandler(sessions *store.SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// toConfig fills a TripConfig with the original app's defaults for anything
// the form left blank, so a bare "new plan" session is immediately usable.
func (r *TripConfigRequest) toConfig() (model.TripConfig, error) {
	cfg := model.TripConfig{
		Travelers:     1,
		Budget:        2000,
		Currency:      "USD",
		Pace:          "Moderate",
		Style:         "Balanced Mix",
		Accommodation: "Mid-range Hotels",
		Food:          "Mix of Local & International",
		StartDate:     time.Now().Truncate(24 * time.Hour),
		EndDate:       time.Now().Truncate(24 * time.Hour),
	}
	if r == nil {
		return cfg, nil
	}

	cfg.Origin = strings.TrimSpace(r.Origin)
	cfg.Destination = strings.TrimSpace(r.Destination)
	if r.StartDate != "" {
		start, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return cfg, err
		}
		cfg.StartDate = start
	}
	if r.EndDate != "" {
		end, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return cfg, err
		}
		cfg.EndDate = end
	}
	if r.Travelers > 0 {
		cfg.Travelers = r.Travelers
	}
	if r.Budget > 0 {
		cfg.Budget = r.Budget
	}
	if r.Currency != "" {
		cfg.Currency = r.Currency
	}
	if r.Pace != "" {
		cfg.Pace = r.Pace
	}
	if r.Style != "" {
		cfg.Style = r.Style
	}
	if len(r.Activities) > 0 {
		cfg.Activities = r.Activities
	}
	if r.Accommodation != "" {
		cfg.Accommodation = r.Accommodation
	}
	if r.Food != "" {
		cfg.Food = r.Food
	}
	return cfg, nil
}

func (h *SessionHandler) Create(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	cfg, err := req.Config.toConfig()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	session, err := h.sessions.Create(workspaceID, req.Name, cfg)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidName):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, store.ErrSessionExists):
			response.Error(c, http.StatusConflict, response.CodeSessionExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create session failed")
		}
		return
	}

	response.OK(c, session)
}

func (h *SessionHandler) List(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	response.OK(c, gin.H{
		"sessions": h.sessions.List(workspaceID),
		"active":   h.sessions.Active(workspaceID),
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
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
	response.OK(c, session)
}

// Update renames the session and/or replaces its working trip configuration.
func (h *SessionHandler) Update(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	name := c.Param("name")
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	// Validate the config before touching the store, and rename before
	// applying it: a rejected rename then leaves the session unchanged
	// instead of half-updated.
	var cfg model.TripConfig
	if req.Config != nil {
		var err error
		cfg, err = req.Config.toConfig()
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}

	if newName := strings.TrimSpace(req.Name); newName != "" && newName != name {
		if err := h.sessions.Rename(workspaceID, name, newName); err != nil {
			respondStoreError(c, err, "rename session failed")
			return
		}
		name = newName
	}

	if req.Config != nil {
		if err := h.sessions.UpdateConfig(workspaceID, name, cfg); err != nil {
			respondStoreError(c, err, "update session failed")
			return
		}
	}

	session, err := h.sessions.Get(workspaceID, name)
	if err != nil {
		respondStoreError(c, err, "update session failed")
		return
	}
	response.OK(c, session)
}

func (h *SessionHandler) Activate(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	name := c.Param("name")
	if err := h.sessions.SetActive(workspaceID, name); err != nil {
		respondStoreError(c, err, "activate session failed")
		return
	}
	response.OK(c, gin.H{"active": name})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	name := c.Param("name")
	if err := h.sessions.Delete(workspaceID, name); err != nil {
		respondStoreError(c, err, "delete session failed")
		return
	}
	response.OK(c, gin.H{"deleted_session": name})
}

func respondStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
	case errors.Is(err, store.ErrDocumentNotFound):
		response.Error(c, http.StatusNotFound, response.CodeDocNotFound, err.Error())
	case errors.Is(err, store.ErrSessionExists):
		response.Error(c, http.StatusConflict, response.CodeSessionExists, err.Error())
	case errors.Is(err, store.ErrInvalidName):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
