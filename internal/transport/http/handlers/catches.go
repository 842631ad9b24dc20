package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
	"github.com/okunev/fishlog/internal/repository"
	"github.com/okunev/fishlog/internal/transport/http/middleware"
	"github.com/okunev/fishlog/internal/usecase"
)

// CatchHandler exposes the catch log endpoints.
type CatchHandler struct {
	registry *usecase.Registry
}

// NewCatchHandler builds a catch handler over the state registry.
func NewCatchHandler(registry *usecase.Registry) *CatchHandler {
	return &CatchHandler{registry: registry}
}

// RegisterRoutes attaches the catch endpoints to the group.
func (h *CatchHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.DELETE("", h.DeleteAll)
}

// List returns the caller's catches, most recent first.
func (h *CatchHandler) List(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	catches := state.Catches()
	out := make([]CatchResponse, 0, len(catches))
	for _, item := range catches {
		out = append(out, NewCatchResponse(item))
	}
	c.JSON(http.StatusOK, out)
}

// Create logs a new catch.
func (h *CatchHandler) Create(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	var req CatchCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "fishType and weight are required"))
		return
	}

	created, err := state.AddCatch(c.Request.Context(), usecase.CatchInput{
		FishType: req.FishType,
		Weight:   req.Weight,
		Length:   req.Length,
		Location: req.Location,
		Bait:     req.Bait,
		Notes:    req.Notes,
		Photo:    req.Photo,
	})
	if err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to log catch")
		return
	}

	c.JSON(http.StatusCreated, NewCatchResponse(created))
}

// Update applies a partial update to a catch.
func (h *CatchHandler) Update(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	var req CatchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request body"))
		return
	}

	patch := domain.CatchPatch{
		FishType: req.FishType,
		Weight:   req.Weight,
		Length:   req.Length,
		Location: req.Location,
		Bait:     req.Bait,
		Notes:    req.Notes,
		Photo:    req.Photo,
		Date:     req.Date,
	}

	if err := state.UpdateCatch(c.Request.Context(), c.Param("id"), patch); err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to update catch")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "catch updated"})
}

// Delete removes a single catch.
func (h *CatchHandler) Delete(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	if err := state.DeleteCatch(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to delete catch")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "catch deleted"})
}

// DeleteAll removes every catch in the caller's log. The batch is not
// atomic; a partial failure is reported even though some deletes may
// have gone through.
func (h *CatchHandler) DeleteAll(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	if err := state.DeleteAllCatches(c.Request.Context()); err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to delete catches")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "all catches deleted"})
}

// stateFromContext resolves the per-user state container for the
// authenticated caller, responding 401 when no identity is present.
func stateFromContext(c *gin.Context, registry *usecase.Registry) (*usecase.AppState, bool) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return nil, false
	}

	return registry.StateFor(&port.AuthUser{ID: userID}), true
}

func stateErrorCases() []ErrorCase {
	return []ErrorCase{
		{Err: usecase.ErrValidation, Status: http.StatusBadRequest, Message: "validation failed"},
		{Err: usecase.ErrNotAuthenticated, Status: http.StatusUnauthorized, Message: "authentication required"},
		{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "not found"},
	}
}
