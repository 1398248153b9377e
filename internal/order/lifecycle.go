package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeMC777/foodorders/internal/auth"
	"github.com/MikeMC777/foodorders/internal/events"
	"github.com/MikeMC777/foodorders/internal/notify"
	"github.com/MikeMC777/foodorders/internal/restaurant"
)

// Restaurants resolves restaurants and their current owner.
type Restaurants interface {
	GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]restaurant.Restaurant, error)
}

// Notifier hands a notification off without waiting for delivery.
type Notifier interface {
	Dispatch(ctx context.Context, job notify.Job)
}

type Lifecycle struct {
	repo        Repository
	restaurants Restaurants
	notifier    Notifier
	events      events.Publisher
	now         func() time.Time
}

func NewLifecycle(repo Repository, restaurants Restaurants, notifier Notifier, pub events.Publisher) *Lifecycle {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Lifecycle{
		repo:        repo,
		restaurants: restaurants,
		notifier:    notifier,
		events:      pub,
		now:         time.Now,
	}
}

// Place persists a new order in status Placed for customerID and notifies
// the customer and the restaurant owner.
func (l *Lifecycle) Place(ctx context.Context, customerID string, req PlaceOrderRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rs, err := l.restaurants.GetByID(ctx, req.Restaurant)
	if errors.Is(err, restaurant.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}

	o := &Order{
		ID:             uuid.NewString(),
		RestaurantID:   rs.ID,
		RestaurantName: req.RestaurantName,
		CustomerID:     customerID,
		TotalAmount:    req.TotalAmount,
		Address:        req.Address,
		Status:         StatusPlaced,
	}
	for _, it := range req.Items {
		o.Items = append(o.Items, Item{
			ID:         uuid.NewString(),
			MenuItemID: it.MenuItem,
			ItemName:   it.ItemName,
			Quantity:   it.Quantity,
			Size:       it.Size,
		})
	}
	if err := l.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	slog.Info("order placed", "order_id", o.ID, "restaurant_id", o.RestaurantID, "customer_id", customerID)

	l.notifier.Dispatch(ctx, notify.Job{
		UserID: customerID,
		Type:   notify.OrderPlaced,
		Data:   map[string]any{"restaurantName": o.RestaurantName, "orderId": o.ID},
	})
	if rs.OwnerID != "" {
		l.notifier.Dispatch(ctx, notify.Job{
			UserID: rs.OwnerID,
			Type:   notify.NewOrder,
			Data: map[string]any{
				"restaurantName": o.RestaurantName,
				"orderId":        o.ID,
				"amount":         o.TotalAmount.String(),
			},
		})
	} else {
		slog.Warn("restaurant has no owner, skipping owner notification", "restaurant_id", rs.ID)
	}
	l.publish(ctx, events.TypeOrderPlaced, o, "")
	return o, nil
}

// Transition moves an order to a new status on behalf of in.Actor.
// Repeating the current status returns the order unchanged.
func (l *Lifecycle) Transition(ctx context.Context, in TransitionInput) (*Order, error) {
	to, ok := ParseStatus(in.Status)
	if !ok {
		return nil, invalid("Invalid order status.")
	}
	o, err := l.repo.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if err := l.authorizeOwner(ctx, in.Actor, o.RestaurantID); err != nil {
		return nil, err
	}
	if o.Status == to {
		return o, nil
	}
	if err := checkTransition(o.Status, to, in.Actor.IsAdmin()); err != nil {
		return nil, err
	}

	reason := ""
	if to == StatusCancelled {
		reason = strings.TrimSpace(in.CancellationReason)
		if reason == "" {
			return nil, invalid("Cancellation reason is required.")
		}
	}

	from := o.Status
	updated, err := l.repo.UpdateStatus(ctx, o.ID, o.Version, to, reason)
	if err != nil {
		return nil, err
	}
	slog.Info("order status changed", "order_id", o.ID, "from", from, "to", to, "actor_id", in.Actor.UserID)

	if t, ok := notificationFor(to); ok {
		l.notifier.Dispatch(ctx, notify.Job{
			UserID: updated.CustomerID,
			Type:   t,
			Data: map[string]any{
				"restaurantName": updated.RestaurantName,
				"orderId":        updated.ID,
				"amount":         updated.TotalAmount.String(),
			},
		})
	}
	l.publish(ctx, events.TypeOrderStatusChanged, updated, from)
	return updated, nil
}

// Get returns an order visible to actor: its customer, the restaurant owner
// or an admin.
func (l *Lifecycle) Get(ctx context.Context, actor auth.Principal, id string) (*Order, error) {
	o, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.CustomerID == actor.UserID {
		return o, nil
	}
	if err := l.authorizeOwner(ctx, actor, o.RestaurantID); err != nil {
		return nil, err
	}
	return o, nil
}

func (l *Lifecycle) ListForCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, error) {
	return l.repo.List(ctx, Filter{CustomerID: customerID, Limit: limit, Offset: offset})
}

// ListForRestaurant lists one restaurant's orders for its owner or an admin.
func (l *Lifecycle) ListForRestaurant(ctx context.Context, actor auth.Principal, restaurantID string, limit, offset int) ([]Order, error) {
	if actor.IsAdmin() {
		if _, err := l.restaurants.GetByID(ctx, restaurantID); err != nil {
			if errors.Is(err, restaurant.ErrNotFound) {
				return nil, ErrRestaurantNotFound
			}
			return nil, err
		}
	} else if err := l.authorizeOwner(ctx, actor, restaurantID); err != nil {
		return nil, err
	}
	return l.repo.List(ctx, Filter{RestaurantIDs: []string{restaurantID}, Limit: limit, Offset: offset})
}

// ListForOwner lists orders across every restaurant ownerID owns.
func (l *Lifecycle) ListForOwner(ctx context.Context, ownerID string, status Status, limit, offset int) ([]Order, error) {
	owned, err := l.restaurants.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owned restaurants: %w", err)
	}
	ids := make([]string, 0, len(owned))
	for _, rs := range owned {
		ids = append(ids, rs.ID)
	}
	return l.repo.List(ctx, Filter{RestaurantIDs: ids, Status: status, Limit: limit, Offset: offset})
}

// ListAll is the admin view over every order.
func (l *Lifecycle) ListAll(ctx context.Context, actor auth.Principal, status Status, limit, offset int) ([]Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return l.repo.List(ctx, Filter{Status: status, Limit: limit, Offset: offset})
}

// authorizeOwner passes admins and the current owner of restaurantID.
// A restaurant that no longer exists authorizes nobody but admins.
func (l *Lifecycle) authorizeOwner(ctx context.Context, actor auth.Principal, restaurantID string) error {
	if actor.IsAdmin() {
		return nil
	}
	rs, err := l.restaurants.GetByID(ctx, restaurantID)
	if errors.Is(err, restaurant.ErrNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("load restaurant: %w", err)
	}
	if rs.OwnerID == "" || rs.OwnerID != actor.UserID {
		return ErrForbidden
	}
	return nil
}

func (l *Lifecycle) publish(ctx context.Context, typ string, o *Order, previous Status) {
	e := events.OrderEvent{
		Type:           typ,
		OrderID:        o.ID,
		RestaurantID:   o.RestaurantID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		PreviousStatus: string(previous),
		At:             l.now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := l.events.Publish(ctx, e); err != nil {
		slog.Error("order event publish failed", "order_id", o.ID, "type", typ, "err", err)
	}
}
