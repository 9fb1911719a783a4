package handler

import (
	"log/slog"
	"net/http"

	"shoplist/internal/delivery/http/response"
	"shoplist/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VerificationHandler holds dependencies for verification-related handlers.
type VerificationHandler struct {
	uc     usecase.VerificationUsecase
	logger *slog.Logger
}

// NewVerificationHandler is the constructor for VerificationHandler, injected by Fx.
func NewVerificationHandler(uc usecase.VerificationUsecase, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{
		uc:     uc,
		logger: logger,
	}
}

type requestCodeRequest struct {
	Phonenumber string `json:"phonenumber" validate:"required,max=32"`
}

// RequestCode issues a fresh verification code to the owner's phone number.
func (h *VerificationHandler) RequestCode(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	var req requestCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.RequestCode(c.Request().Context(), ownerID, req.Phonenumber); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, nil, "Verification code sent")
}

type confirmCodeRequest struct {
	Code     string `json:"code" validate:"required,max=16"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

// ConfirmCode checks the submitted code and, on success, optionally claims
// the account with a password in the same step.
func (h *VerificationHandler) ConfirmCode(c echo.Context) error {
	ownerID, err := ownerIDParam(c)
	if err != nil {
		return err
	}

	var req confirmCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	owner, err := h.uc.ConfirmCode(c.Request().Context(), &usecase.ConfirmCodeInput{
		OwnerID:  ownerID,
		Code:     req.Code,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOwnerResponse(owner), "Owner verified successfully")
}
