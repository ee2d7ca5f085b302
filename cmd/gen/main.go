package main

import (
	"storefront/internal/infra/persistence/model"

	"gorm.io/gen"
)

// Regenerates internal/infra/persistence/postgres/query for the models whose
// repositories use the typed query builder.
func main() {
	models := []any{
		model.UserModel{},
		model.CategoryModel{},
		model.TeamModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
