package handler

import (
	"log/slog"
	"net/http"

	"shoplist/internal/delivery/http/response"
	"shoplist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OwnerHandler holds dependencies for owner-related handlers.
type OwnerHandler struct {
	uc     usecase.OwnerUsecase
	logger *slog.Logger
}

// NewOwnerHandler is the constructor for OwnerHandler, injected by Fx.
func NewOwnerHandler(uc usecase.OwnerUsecase, logger *slog.Logger) *OwnerHandler {
	return &OwnerHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerOwnerRequest struct {
	Username    string              `json:"username" validate:"required,min=1,max=100"`
	Phonenumber string              `json:"phonenumber" validate:"omitempty,max=32"`
	Email       string              `json:"email" validate:"omitempty,email"`
	Home        *CoordinateResponse `json:"home"`
}

// Register handles the owner registration request.
func (h *OwnerHandler) Register(c echo.Context) error {
	var req registerOwnerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	owner, err := h.uc.RegisterOwner(c.Request().Context(), &usecase.RegisterOwnerInput{
		Username:    req.Username,
		Phonenumber: req.Phonenumber,
		Email:       req.Email,
		Home:        coordinateInput(req.Home),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOwnerResponse(owner), "Owner registered successfully")
}

// List returns all active owners. With the username query parameter set, the
// single matching active owner is returned instead.
func (h *OwnerHandler) List(c echo.Context) error {
	if username := c.QueryParam("username"); username != "" {
		owner, err := h.uc.GetOwnerByUsername(c.Request().Context(), username)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, []OwnerResponse{toOwnerResponse(owner)}, "")
	}

	owners, err := h.uc.ListOwners(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOwnerResponses(owners), "")
}

// Get returns a single owner by ID.
func (h *OwnerHandler) Get(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	owner, err := h.uc.GetOwner(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOwnerResponse(owner), "")
}

type updateProfileRequest struct {
	Username    string              `json:"username" validate:"required,min=1,max=100"`
	Phonenumber string              `json:"phonenumber" validate:"omitempty,max=32"`
	Home        *CoordinateResponse `json:"home"`
}

// UpdateProfile handles the narrow profile update.
func (h *OwnerHandler) UpdateProfile(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	owner, err := h.uc.UpdateProfile(c.Request().Context(), ownerID, &usecase.UpdateProfileInput{
		Username:    req.Username,
		Phonenumber: req.Phonenumber,
		Home:        coordinateInput(req.Home),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOwnerResponse(owner), "Profile updated successfully")
}

// Deactivate soft-deletes an owner.
func (h *OwnerHandler) Deactivate(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeactivateOwner(c.Request().Context(), ownerID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Owner deactivated")
}

type itemRequest struct {
	Key       string `json:"key" validate:"omitempty,max=64"`
	Title     string `json:"title" validate:"required,max=255"`
	Body      string `json:"body"`
	Shareable bool   `json:"shareable"`
}

// AttachItem links a new item to the owner.
func (h *OwnerHandler) AttachItem(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.uc.AttachItem(c.Request().Context(), ownerID, &usecase.ItemInput{
		Key:       req.Key,
		Title:     req.Title,
		Body:      req.Body,
		Shareable: req.Shareable,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toItemResponse(item), "Item attached successfully")
}

// UpdateItem updates one of the owner's items, identified by the key path
// parameter.
func (h *OwnerHandler) UpdateItem(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.uc.UpdateOwnerItem(c.Request().Context(), ownerID, &usecase.ItemInput{
		Key:       c.Param("key"),
		Title:     req.Title,
		Body:      req.Body,
		Shareable: req.Shareable,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemResponse(item), "Item updated successfully")
}

type interestedAreaRequest struct {
	Points []CoordinateResponse `json:"points" validate:"omitempty,min=3,dive"`
}

// SetInterestedArea replaces the owner's discovery polygon.
func (h *OwnerHandler) SetInterestedArea(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	var req interestedAreaRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid area input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.SetInterestedArea(c.Request().Context(), ownerID, coordinateInputs(req.Points)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Interested area updated")
}

// ownerIDParam parses the :id path parameter.
func ownerIDParam(c echo.Context) (uuid.UUID, error) {
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid owner id")
	}

	return ownerID, nil
}
