package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/usecase"
)

// SpotHandler exposes the fishing spot endpoints.
type SpotHandler struct {
	registry *usecase.Registry
}

// NewSpotHandler builds a spot handler over the state registry.
func NewSpotHandler(registry *usecase.Registry) *SpotHandler {
	return &SpotHandler{registry: registry}
}

// RegisterRoutes attaches the spot endpoints to the group.
func (h *SpotHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.PATCH("/:id", h.Update)
	group.POST("/:id/activate", h.Activate)
}

// List returns the caller's saved spots in creation order.
func (h *SpotHandler) List(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	spots := state.FishingSpots()
	out := make([]SpotResponse, 0, len(spots))
	for _, spot := range spots {
		out = append(out, NewSpotResponse(spot))
	}
	c.JSON(http.StatusOK, out)
}

// Create saves a new fishing spot with a zero catch counter.
func (h *SpotHandler) Create(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	var req SpotCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "name is required"))
		return
	}

	var coords *domain.Coordinates
	if req.Coordinates != nil {
		coords = &domain.Coordinates{Lat: req.Coordinates.Lat, Lng: req.Coordinates.Lng}
	}

	created, err := state.AddFishingSpot(c.Request.Context(), usecase.SpotInput{
		Name:        req.Name,
		Location:    req.Location,
		Rating:      req.Rating,
		Distance:    req.Distance,
		FishTypes:   req.FishTypes,
		LastVisit:   req.LastVisit,
		Image:       req.Image,
		Coordinates: coords,
	})
	if err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to save spot")
		return
	}

	c.JSON(http.StatusCreated, NewSpotResponse(created))
}

// Update applies a partial update to a spot.
func (h *SpotHandler) Update(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	var req SpotUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request body"))
		return
	}

	patch := domain.SpotPatch{
		Name:      req.Name,
		Location:  req.Location,
		Rating:    req.Rating,
		Distance:  req.Distance,
		FishTypes: req.FishTypes,
		LastVisit: req.LastVisit,
		Image:     req.Image,
	}
	if req.Coordinates != nil {
		patch.Coordinates = &domain.Coordinates{Lat: req.Coordinates.Lat, Lng: req.Coordinates.Lng}
	}

	if err := state.UpdateFishingSpot(c.Request.Context(), c.Param("id"), patch); err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to update spot")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "spot updated"})
}

// Activate makes the target spot the caller's single active spot.
func (h *SpotHandler) Activate(c *gin.Context) {
	state, ok := stateFromContext(c, h.registry)
	if !ok {
		return
	}

	if err := state.SetActiveSpot(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, stateErrorCases(), http.StatusInternalServerError, "failed to activate spot")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "spot activated"})
}
