package domain

// ImageRef points at an image on the external asset host. The host owns the
// binary; we only store the reference.
type ImageRef struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

type Product struct {
	ID          string     `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string     `bson:"name" json:"name"`
	Price       float64    `bson:"price" json:"price"`
	Description string     `bson:"description" json:"description"`
	ModelNumber string     `bson:"model_number" json:"model_number"`
	Category    []string   `bson:"category" json:"category"`
	Images      []ImageRef `bson:"images" json:"images"`
}
