package domain

import "time"

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// CartItem carries a denormalized product snapshot captured at add time.
// The snapshot may drift from the live catalog; that is accepted.
type CartItem struct {
	ProductID   string     `bson:"product_id" json:"product_id"`
	Name        string     `bson:"name" json:"name"`
	Price       float64    `bson:"price" json:"price"`
	ModelNumber string     `bson:"model_number" json:"model_number"`
	Images      []ImageRef `bson:"images" json:"images"`
	Quantity    int        `bson:"quantity" json:"quantity"`
	AddedAt     time.Time  `bson:"added_at" json:"added_at"`
}
