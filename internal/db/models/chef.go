package models

// Chef authors recipes.
type Chef struct {
	Base
	Name string `gorm:"size:255;not null"`
	Bio  string `gorm:"type:text"`
}

// TableName specifies the database table name for the Chef model.
func (Chef) TableName() string {
	return TableChefs
}
