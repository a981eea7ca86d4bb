package models

type Tag struct {
	ID    uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"column:name;type:varchar(200);not null;uniqueIndex:uk_tags_name" json:"name"`
	Color string `gorm:"column:color;type:varchar(16)" json:"color"`
	Slug  string `gorm:"column:slug;type:varchar(200);not null;uniqueIndex:uk_tags_slug" json:"slug"`
}

func (Tag) TableName() string {
	return "tags"
}

// Ingredient 食材目录，(name, unit) 可以重复，按 id 区分
type Ingredient struct {
	ID              uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string `gorm:"column:name;type:varchar(200);not null;index:idx_ingredients_name" json:"name"`
	MeasurementUnit string `gorm:"column:measurement_unit;type:varchar(200);not null" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
