package models

// Service is a priced catalog entry offered by a shop.
// Duration must be a positive multiple of the shop's slot granularity.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	ShopID      string  `bson:"shopId" json:"shopId"`
	Name        string  `bson:"name" json:"name" binding:"required"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	Duration    int     `bson:"duration" json:"duration" binding:"required"` // minutes
}
