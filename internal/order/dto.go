package order

import (
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/foodorders/internal/auth"
)

// PlaceOrderItem payload de ítem.
// swagger:model PlaceOrderItem
type PlaceOrderItem struct {
	MenuItem string `json:"menuItem" validate:"required"       example:"665f1c2e9b1e8a0012345678"`
	ItemName string `json:"itemName" validate:"required"       example:"Margherita"`
	Quantity int    `json:"quantity" validate:"required,gte=1,lte=1000" example:"2"`
	Size     string `json:"size"                                        example:"Large"`
}

// PlaceOrderRequest payload de creación de orden.
// swagger:model PlaceOrderRequest
type PlaceOrderRequest struct {
	Restaurant     string           `json:"restaurant"     validate:"required"            example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	RestaurantName string           `json:"restaurantName" validate:"required"            example:"La Pizzeria"`
	Items          []PlaceOrderItem `json:"items"          validate:"required,min=1,dive"`
	TotalAmount    decimal.Decimal  `json:"totalAmount"    validate:"gt=0"                swaggertype:"number" example:"250"`
	Address        string           `json:"address"        validate:"required"            example:"12 Lane"`
}

// UpdateStatusRequest payload de cambio de estado.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status             string `json:"status"             example:"Accepted"`
	CancellationReason string `json:"cancellationReason" example:"Shop Closed"`
}

// TransitionInput is one status change requested by an actor.
type TransitionInput struct {
	OrderID            string
	Actor              auth.Principal
	Status             string
	CancellationReason string
}
