package main

import (
	"context"
	"log/slog"

	"shoplist/config"
	"shoplist/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type seedParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Owners  usecase.OwnerUsecase
	Sharing usecase.SharingUsecase
}

// seedFixtures creates a small development fixture when enabled: one owner
// with a family group and a first list item. Safe to run repeatedly; an
// existing fixture owner short-circuits.
func seedFixtures(params seedParams) error {
	if params.Config.Seed == nil || !params.Config.Seed.Enabled {
		return nil
	}

	ctx := context.Background()

	if _, err := params.Owners.GetOwnerByUsername(ctx, "heiko"); err == nil {
		params.Logger.Debug("seed fixture already present")

		return nil
	}

	owner, err := params.Owners.RegisterOwner(ctx, &usecase.RegisterOwnerInput{
		Username:    "heiko",
		Phonenumber: "0160111111",
		Home: &usecase.CoordinateInput{
			Longitude:      9.18,
			Latitude:       48.78,
			LongitudeDelta: 0.1,
			LatitudeDelta:  0.1,
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to seed owner")
	}

	if _, err := params.Sharing.CreateGroup(ctx, owner.ID, &usecase.CreateGroupInput{Name: "Family"}); err != nil {
		return errors.Wrap(err, "failed to seed group")
	}

	if _, err := params.Owners.AttachItem(ctx, owner.ID, &usecase.ItemInput{
		Title:     "Title",
		Body:      "1 x Eggs",
		Shareable: true,
	}); err != nil {
		return errors.Wrap(err, "failed to seed item")
	}

	params.Logger.Info("seed fixture created", slog.String("ownerID", owner.ID.String()))

	return nil
}
