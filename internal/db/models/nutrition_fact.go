package models

// NutritionFact belongs to at most one recipe through nutrition_facts.recipe_id.
type NutritionFact struct {
	Base
	Protein  float64
	Fat      float64
	Carbs    float64
	RecipeID *string `gorm:"size:20;index"`
}

// TableName specifies the database table name for the NutritionFact model.
func (NutritionFact) TableName() string {
	return TableNutritionFacts
}
