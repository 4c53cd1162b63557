package models

// Table names shared by the gorm models and the schema descriptors.
const (
	TableRecipes         = "recipes"
	TableChefs           = "chefs"
	TableTags            = "tags"
	TableSteps           = "steps"
	TableNutritionFacts  = "nutrition_facts"
	TableImages          = "images"
	TableUploadFiles     = "upload_files"
	TableUploadFileMorph = "upload_file_morph"
	TableRecipesTags     = "recipes_tags"
	TableRecipesRelated  = "recipes_related"
)

// All returns every model in migration order.
func All() []any {
	return []any{
		&Chef{},
		&Image{},
		&Tag{},
		&UploadFile{},
		&Recipe{},
		&Step{},
		&NutritionFact{},
		&UploadFileMorph{},
	}
}
