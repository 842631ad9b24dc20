package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okunev/fishlog/internal/usecase"
)

// SettingsHandler exposes the settings document and the data export endpoint.
type SettingsHandler struct {
	registry *usecase.Registry
}

// NewSettingsHandler builds a settings handler over the state registry.
func NewSettingsHandler(registry *usecase.Registry) *SettingsHandler {
	return &SettingsHandler{registry: registry}
}

// RegisterRoutes attaches the settings and export endpoints to the group.
func (h *SettingsHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.Get)
	group.PATCH("", h.Update)
}

// Get returns the caller's merged settings document.
func (h *SettingsHandler) Get(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, NewSettingsResponse(state.Settings()))
}

// Update merges a partial settings update into the stored document. The
// profile group is persisted separately from the notification and
// preference groups.
func (h *SettingsHandler) Update(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	var req SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request body"))
		return
	}

	if err := state.UpdateSettings(c.Request.Context(), req.ToDomain()); err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to update settings")
		return
	}

	c.JSON(http.StatusOK, NewSettingsResponse(state.Settings()))
}

// Export streams a JSON backup of the caller's catches, spots, and settings.
func (h *SettingsHandler) Export(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	data, err := state.Export()
	if err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to export data")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="fishing-journal-backup.json"`)
	c.Data(http.StatusOK, "application/json", data)
}
