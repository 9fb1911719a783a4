package main

import (
	"context"
	"log/slog"
	"os"

	"shoplist/config"
	"shoplist/internal/delivery"
	"shoplist/internal/delivery/http"
	"shoplist/internal/delivery/http/router/handler"
	"shoplist/internal/infra/auth"
	logs "shoplist/internal/infra/log"
	"shoplist/internal/infra/persistence/postgres"
	"shoplist/internal/infra/verification"
	"shoplist/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			seedFixtures,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewOwnerRepository,
			postgres.NewItemRepository,
			postgres.NewUserGroupRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			verification.NewCodeGenerator,
			verification.NewLogSender,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewOwnerService,
			impl.NewVerificationService,
			impl.NewSharingService,
			impl.NewDiscoveryService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewOwnerHandler,
			handler.NewVerificationHandler,
			handler.NewGroupHandler,
			handler.NewDiscoveryHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
