package main

import (
	"shoplist/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.OwnerModel{},
		model.AreaPointModel{},
		model.ItemModel{},
		model.UserGroupModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
