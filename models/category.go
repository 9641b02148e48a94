package models

// Category is static lookup data for post categories.
type Category struct {
	Model
	Value  string `json:"value" gorm:"uniqueIndex;not null"`
	Label  string `json:"label" gorm:"not null"`
	Icon   string `json:"icon"`
	Order  int    `json:"order" gorm:"column:sort_order;default:0"`
	Active bool   `json:"active" gorm:"default:true"`
}

type CreateCategoryRequest struct {
	Value string `json:"value" binding:"required" conform:"trim,lower"`
	Label string `json:"label" binding:"required" conform:"trim"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}
