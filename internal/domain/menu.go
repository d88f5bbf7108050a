package domain

// MenuItem is a canonical catalog record. The catalog is read-only for this
// service; rows are created by cmd/seed and referenced by favorites.
type MenuItem struct {
	ID              string  `json:"id" gorm:"primaryKey"`
	Name            string  `json:"name" gorm:"not null"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Category        string  `json:"category" gorm:"index"`
	Course          string  `json:"course"`
	Image           string  `json:"image"`
	Availability    bool    `json:"availability"`
	PreparationTime int     `json:"preparationTime"`
	IsVegetarian    bool    `json:"isVegetarian"`
	IsSpicy         bool    `json:"isSpicy"`
}

func (MenuItem) TableName() string { return "menu_items" }

// Restaurant is a canonical restaurant record referenced by favorites.
type Restaurant struct {
	ID      string  `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"not null"`
	Cuisine string  `json:"cuisine"`
	Rating  float64 `json:"rating"`
	Image   string  `json:"image"`
}

func (Restaurant) TableName() string { return "restaurants" }
