package models

// Step is one instruction of a recipe, owned through steps.recipe_id.
type Step struct {
	Base
	Position    int     `gorm:"not null;default:0"`
	Instruction string  `gorm:"type:text"`
	RecipeID    *string `gorm:"size:20;index"`
}

// TableName specifies the database table name for the Step model.
func (Step) TableName() string {
	return TableSteps
}
