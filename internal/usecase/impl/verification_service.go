package impl

import (
	"context"
	"log/slog"
	"time"

	"shoplist/config"
	deliverycontext "shoplist/internal/delivery/context"
	"shoplist/internal/domain/entity"
	"shoplist/internal/domain/repository"
	"shoplist/internal/domain/service"
	"shoplist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// verificationService implements the VerificationUsecase interface.
type verificationService struct {
	txManager repository.TransactionManager
	generator service.CodeGenerator
	sender    service.CodeSender
	hasher    service.PasswordHasher
	codeTTL   time.Duration
	logger    *slog.Logger
}

// VerificationServiceParams holds dependencies for verificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Generator service.CodeGenerator
	Sender    service.CodeSender
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewVerificationService is the constructor for verificationService.
func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	codeTTL := entity.DefaultCodeTTL
	if params.Config != nil && params.Config.Verification != nil && params.Config.Verification.CodeTTL > 0 {
		codeTTL = params.Config.Verification.CodeTTL
	}

	return &verificationService{
		txManager: params.TxManager,
		generator: params.Generator,
		sender:    params.Sender,
		hasher:    params.Hasher,
		codeTTL:   codeTTL,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *verificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RequestCode issues a fresh verification code to the given phone number and
// records it on the owner. The code is only handed to the sender after the
// transaction committed, so an aborted save never leaks a code.
func (srv *verificationService) RequestCode(ctx context.Context, ownerID uuid.UUID, phonenumber string) error {
	srv.log(ctx).Info("Requesting verification code", slog.String("ownerID", ownerID.String()))

	code, err := srv.generator.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate verification code")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()

		owner, err := findOwner(ctx, ownerRepo, ownerID)
		if err != nil {
			return err
		}

		owner.VerificationSent(entity.Verification{
			Code:        code,
			Phonenumber: phonenumber,
		})

		if err := ownerRepo.Update(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to save owner")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to request verification code")
	}

	if err := srv.sender.Send(ctx, phonenumber, code); err != nil {
		srv.log(ctx).Error("failed to deliver verification code", slog.Any("error", err))

		return errors.Wrap(err, "failed to deliver verification code")
	}
	srv.log(ctx).Debug("verification code sent", slog.String("ownerID", ownerID.String()))

	return nil
}

// ConfirmCode checks the submitted code against the pending one. On success
// the pending code is cleared, and when a password was supplied its hash is
// stored so the account is claimed in the same step.
func (srv *verificationService) ConfirmCode(ctx context.Context, input *usecase.ConfirmCodeInput) (*entity.Owner, error) {
	srv.log(ctx).Info("Confirming verification code", slog.String("ownerID", input.OwnerID.String()))

	var verified *entity.Owner

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()

		owner, err := findOwner(ctx, ownerRepo, input.OwnerID)
		if err != nil {
			return err
		}

		candidate := entity.Verification{
			Code:        input.Code,
			Phonenumber: owner.Phonenumber,
			TTL:         srv.codeTTL,
		}
		if _, err := owner.Verify(candidate, time.Now()); err != nil {
			return err
		}

		if input.Password != "" {
			hash, err := srv.hasher.Hash(input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			owner.Password = hash
		}
		owner.ClearVerification()

		if err := ownerRepo.Update(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to save owner")
		}
		verified = owner

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to confirm verification code")
	}

	return verified, nil
}
