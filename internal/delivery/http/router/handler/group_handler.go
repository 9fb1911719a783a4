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

// GroupHandler holds dependencies for group and sharing handlers.
type GroupHandler struct {
	uc     usecase.SharingUsecase
	logger *slog.Logger
}

// NewGroupHandler is the constructor for GroupHandler, injected by Fx.
func NewGroupHandler(uc usecase.SharingUsecase, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		uc:     uc,
		logger: logger,
	}
}

type createGroupRequest struct {
	Name      string      `json:"name" validate:"required,min=1,max=100"`
	MemberIDs []uuid.UUID `json:"member_ids"`
}

// Create handles group creation for the owner in the path.
func (h *GroupHandler) Create(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group, err := h.uc.CreateGroup(c.Request().Context(), ownerID, &usecase.CreateGroupInput{
		Name:      req.Name,
		MemberIDs: req.MemberIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toGroupResponse(group), "Group created successfully")
}

// Get returns a single group with its members.
func (h *GroupHandler) Get(c echo.Context) error {
	groupID, err := groupIDParam(c)
	if err != nil {
		return err
	}

	group, err := h.uc.GetGroup(c.Request().Context(), groupID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toGroupResponse(group), "")
}

// List returns the groups created by the owner in the path.
func (h *GroupHandler) List(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	groups, err := h.uc.ListGroups(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toGroupResponses(groups), "")
}

type addMemberRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
}

// AddMember adds an owner to a group administered by the owner in the path.
func (h *GroupHandler) AddMember(c echo.Context) error {
	actorID, err := ownerIDParam(c)
	if err != nil {
		return err
	}
	groupID, err := groupIDParam(c)
	if err != nil {
		return err
	}

	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid member input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group, err := h.uc.AddMember(c.Request().Context(), actorID, groupID, req.MemberID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toGroupResponse(group), "Member added successfully")
}

type shareItemRequest struct {
	GroupID uuid.UUID `json:"group_id" validate:"required"`
}

// ShareItem grants a group access to one of the owner's items.
func (h *GroupHandler) ShareItem(c echo.Context) error {
	actorID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	var req shareItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid share input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.uc.ShareItem(c.Request().Context(), actorID, c.Param("key"), req.GroupID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemResponse(item), "Item shared successfully")
}

// groupIDParam parses the :groupID path parameter.
func groupIDParam(c echo.Context) (uuid.UUID, error) {
	groupID, err := uuid.Parse(c.Param("groupID"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid group id")
	}

	return groupID, nil
}
