package models

// UploadFile can be attached to rows of any table through UploadFileMorph.
type UploadFile struct {
	Base
	Name string `gorm:"size:255;not null"`
	URL  string `gorm:"size:1024;not null"`
	Mime string `gorm:"size:100"`
}

// TableName specifies the database table name for the UploadFile model.
func (UploadFile) TableName() string {
	return TableUploadFiles
}

// UploadFileMorph links a file to a row of any table. RelatedType holds the
// table name of the row and Field the relation alias the link belongs to.
type UploadFileMorph struct {
	UploadFileID string `gorm:"primaryKey;size:20"`
	RelatedID    string `gorm:"primaryKey;size:20;index:idx_upload_file_morph_related"`
	RelatedType  string `gorm:"primaryKey;size:100;index:idx_upload_file_morph_related"`
	Field        string `gorm:"primaryKey;size:100"`
}

// TableName specifies the database table name for the UploadFileMorph model.
func (UploadFileMorph) TableName() string {
	return TableUploadFileMorph
}
