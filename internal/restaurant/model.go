package restaurant

import "time"

type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"ownerId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateRestaurantRequest payload of creation.
// swagger:model CreateRestaurantRequest
type CreateRestaurantRequest struct {
	Name    string `json:"name"     binding:"required" example:"La Pizzeria"`
	Address string `json:"address"  binding:"required" example:"12 Lane"`
	OwnerID string `json:"ownerId"  binding:"required" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
}
