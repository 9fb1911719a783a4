package verification

import (
	"context"
	"log/slog"

	"shoplist/internal/domain/service"

	"go.uber.org/fx"
)

// logSender writes verification codes to the application log instead of an
// SMS gateway. Suitable for development and test environments only; a real
// deployment swaps in a gateway-backed implementation of the same interface.
type logSender struct {
	logger *slog.Logger
}

// LogSenderParams holds dependencies for logSender, injected by Fx.
type LogSenderParams struct {
	fx.In

	Logger *slog.Logger
}

// NewLogSender is the constructor for logSender.
func NewLogSender(params LogSenderParams) service.CodeSender {
	return &logSender{logger: params.Logger}
}

// Send logs the code and its destination.
func (s *logSender) Send(ctx context.Context, phonenumber, code string) error {
	s.logger.InfoContext(ctx, "Verification code issued",
		slog.String("phonenumber", phonenumber),
		slog.String("code", code),
	)

	return nil
}
