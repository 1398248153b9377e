package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultSize = "Regular"

type Order struct {
	ID                 string          `json:"id"`
	RestaurantID       string          `json:"restaurant"`
	RestaurantName     string          `json:"restaurantName"`
	CustomerID         string          `json:"customer"`
	Items              []Item          `json:"items"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Address            string          `json:"address"`
	Status             Status          `json:"status"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	Version            int             `json:"version"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type Item struct {
	ID         string `json:"id"`
	MenuItemID string `json:"menuItem"`
	ItemName   string `json:"itemName"`
	Quantity   int    `json:"quantity"`
	Size       string `json:"size"`
}

// Filter selects orders for the read side. Empty fields do not filter.
type Filter struct {
	CustomerID    string
	RestaurantIDs []string
	Status        Status
	Limit         int
	Offset        int
}
