package handler

import (
	"log/slog"
	"net/http"

	"shoplist/internal/delivery/http/response"
	"shoplist/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DiscoveryHandler holds dependencies for spatial discovery handlers.
type DiscoveryHandler struct {
	uc     usecase.DiscoveryUsecase
	logger *slog.Logger
}

// NewDiscoveryHandler is the constructor for DiscoveryHandler, injected by Fx.
func NewDiscoveryHandler(uc usecase.DiscoveryUsecase, logger *slog.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		uc:     uc,
		logger: logger,
	}
}

// Nearby returns the active owners inside the requesting owner's area of
// interest.
func (h *DiscoveryHandler) Nearby(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	owners, err := h.uc.FindNearbyOwners(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOwnerResponses(owners), "")
}

type searchAreaRequest struct {
	Area []CoordinateResponse `json:"area" validate:"required,min=3,dive"`
}

// Search returns the active owners inside an ad-hoc polygon.
func (h *DiscoveryHandler) Search(c echo.Context) error {
	var req searchAreaRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid search input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	owners, err := h.uc.FindOwnersWithinArea(c.Request().Context(), coordinateInputs(req.Area))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOwnerResponses(owners), "")
}
