package order

import (
	"strings"

	"github.com/MikeMC777/foodorders/internal/notify"
)

type Status string

const (
	StatusPlaced    Status = "Placed"
	StatusAccepted  Status = "Accepted"
	StatusReady     Status = "Ready"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus accepts the canonical names case-insensitively. "Confirmed"
// is read as Accepted.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "placed":
		return StatusPlaced, true
	case "accepted", "confirmed":
		return StatusAccepted, true
	case "ready":
		return StatusReady, true
	case "delivered":
		return StatusDelivered, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	}
	return "", false
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type allowedActor int

const (
	ownerOrAdmin allowedActor = iota + 1
	adminOnly
)

var transitions = map[Status]map[Status]allowedActor{
	StatusPlaced: {
		StatusAccepted:  ownerOrAdmin,
		StatusCancelled: ownerOrAdmin,
	},
	StatusAccepted: {
		StatusReady:     ownerOrAdmin,
		StatusDelivered: ownerOrAdmin,
		StatusCancelled: adminOnly,
	},
	StatusReady: {
		StatusDelivered: ownerOrAdmin,
		StatusCancelled: adminOnly,
	},
}

// checkTransition returns nil when an actor with the given admin flag may
// move an order from -> to.
func checkTransition(from, to Status, admin bool) error {
	who, ok := transitions[from][to]
	if !ok {
		return ErrInvalidTransition
	}
	if who == adminOnly && !admin {
		return ErrForbidden
	}
	return nil
}

// notificationFor maps a new status to the customer notification it sends.
// Placed and Cancelled send none.
func notificationFor(s Status) (notify.Type, bool) {
	switch s {
	case StatusAccepted:
		return notify.OrderConfirmed, true
	case StatusReady:
		return notify.OrderReady, true
	case StatusDelivered:
		return notify.OrderDelivered, true
	}
	return "", false
}
