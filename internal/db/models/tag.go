package models

// Tag labels recipes. Recipes and tags are linked through recipes_tags.
type Tag struct {
	Base
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

// TableName specifies the database table name for the Tag model.
func (Tag) TableName() string {
	return TableTags
}
