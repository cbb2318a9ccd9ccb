package dbmodels

type Tag struct {
	BaseModel
	Name  string `gorm:"type:varchar(36);uniqueIndex"`
	Color string `gorm:"type:varchar(7)"`
}

type DocumentTag struct {
	BaseModel
	DocumentID string `gorm:"type:varchar(36);index:idx_document_tag"`
	TagID      string `gorm:"type:varchar(36);index:idx_document_tag"`
	Tag        *Tag   `gorm:"foreignKey:TagID"`
}
