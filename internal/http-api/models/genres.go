package models

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:200"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null;size:300"`
}

func (Genre) TableName() string {
	return "genres"
}
