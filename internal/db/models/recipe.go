package models

// Recipe is the row of the recipes table. Relations are declared here so
// AutoMigrate creates the link tables and foreign keys; reads and writes go
// through the descriptor returned by RecipeSchema.
type Recipe struct {
	Base
	Name        string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text"`
	Calories    int64   `gorm:"index"`
	Servings    int64
	Price       float64 `gorm:"type:decimal(10,2)"`
	Rating      float64
	IsVegan     bool   `gorm:"column:is_vegan"`
	Difficulty  string `gorm:"size:16"`

	AuthorID *string `gorm:"size:20;index"`
	Author   *Chef   `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`

	CoverID *string `gorm:"size:20"`
	Cover   *Image  `gorm:"foreignKey:CoverID;constraint:OnDelete:SET NULL"`

	Nutrition *NutritionFact `gorm:"foreignKey:RecipeID"`
	Steps     []Step         `gorm:"foreignKey:RecipeID"`
	Tags      []Tag          `gorm:"many2many:recipes_tags;joinForeignKey:RecipeID;joinReferences:TagID"`
	Related   []Recipe       `gorm:"many2many:recipes_related;joinForeignKey:RecipeID;joinReferences:RelatedID"`
}

// TableName pins the table name used by the descriptor.
func (Recipe) TableName() string {
	return TableRecipes
}
