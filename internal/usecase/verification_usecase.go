package usecase

import (
	"context"

	"shoplist/internal/domain/entity"

	"github.com/google/uuid"
)

// VerificationUsecase defines the interface for phone-verification operations.
type VerificationUsecase interface {
	// RequestCode issues a fresh code to the given phone number and records
	// it on the owner. A pending code is superseded.
	RequestCode(ctx context.Context, ownerID uuid.UUID, phonenumber string) error

	// ConfirmCode checks the submitted code against the pending one. On
	// success the owner's password is set when one is supplied and the
	// pending code is cleared.
	ConfirmCode(ctx context.Context, input *ConfirmCodeInput) (*entity.Owner, error)
}

// ConfirmCodeInput defines the data required to confirm a verification code.
type ConfirmCodeInput struct {
	OwnerID  uuid.UUID `json:"owner_id"`
	Code     string    `json:"code"`
	Password string    `json:"password,omitempty"`
}
