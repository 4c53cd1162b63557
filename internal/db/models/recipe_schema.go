package models

import (
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
)

// Difficulty levels accepted by Recipe.Difficulty.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// RecipeSchema describes the recipes resource. It must stay in line with
// the Recipe model and its link tables.
func RecipeSchema() *schema.Schema {
	return &schema.Schema{
		Name:       "recipe",
		Table:      TableRecipes,
		PrimaryKey: "id",
		Timestamps: true,
		Attributes: []schema.Attribute{
			{Name: "name", Type: schema.String, Required: true, MaxLength: 255},
			{Name: "description", Type: schema.Text},
			{Name: "calories", Type: schema.Integer},
			{Name: "servings", Type: schema.Integer},
			{Name: "price", Type: schema.Decimal},
			{Name: "rating", Type: schema.Float},
			{Name: "isVegan", Type: schema.Boolean, Column: "is_vegan"},
			{
				Name:      "difficulty",
				Type:      schema.Enumeration,
				MaxLength: 16,
				Enum:      []string{DifficultyEasy, DifficultyMedium, DifficultyHard},
			},
		},
		Relations: []schema.Relation{
			{
				Alias:        "author",
				Nature:       schema.ManyToOne,
				Target:       TableChefs,
				Column:       "author_id",
				AutoPopulate: true,
			},
			{
				Alias:        "cover",
				Nature:       schema.OneWay,
				Target:       TableImages,
				Column:       "cover_id",
				AutoPopulate: true,
			},
			{
				Alias:        "nutrition",
				Nature:       schema.OneToOne,
				Target:       TableNutritionFacts,
				ForeignKey:   "recipe_id",
				AutoPopulate: true,
			},
			{
				Alias:        "steps",
				Nature:       schema.OneToMany,
				Target:       TableSteps,
				ForeignKey:   "recipe_id",
				AutoPopulate: true,
			},
			{
				Alias:          "tags",
				Nature:         schema.ManyToMany,
				Target:         TableTags,
				JoinTable:      TableRecipesTags,
				JoinForeignKey: "recipe_id",
				JoinReferences: "tag_id",
				AutoPopulate:   true,
			},
			{
				Alias:          "related",
				Nature:         schema.ManyWay,
				Target:         TableRecipes,
				JoinTable:      TableRecipesRelated,
				JoinForeignKey: "recipe_id",
				JoinReferences: "related_id",
			},
			{
				Alias:          "thumbnail",
				Nature:         schema.OneToManyMorph,
				Target:         TableUploadFiles,
				JoinTable:      TableUploadFileMorph,
				JoinForeignKey: "related_id",
				JoinReferences: "upload_file_id",
				MorphType:      "related_type",
				MorphField:     "field",
				AutoPopulate:   true,
			},
			{
				Alias:          "gallery",
				Nature:         schema.ManyToManyMorph,
				Target:         TableUploadFiles,
				JoinTable:      TableUploadFileMorph,
				JoinForeignKey: "related_id",
				JoinReferences: "upload_file_id",
				MorphType:      "related_type",
				MorphField:     "field",
				AutoPopulate:   true,
			},
		},
	}
}
