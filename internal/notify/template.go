// Package notify renders order notifications, stores them in the recipient's
// inbox and fans them out to every registered push token.
package notify

import (
	"errors"
	"fmt"
	"time"
)

type Type string

const (
	OrderPlaced    Type = "ORDER_PLACED"
	OrderConfirmed Type = "ORDER_CONFIRMED"
	OrderReady     Type = "ORDER_READY"
	OrderDelivered Type = "ORDER_DELIVERED"
	NewOrder       Type = "NEW_ORDER"
)

var (
	ErrUnknownType  = errors.New("unknown notification type")
	ErrMissingField = errors.New("missing notification field")
)

const (
	customerOrdersURL = "/your-orders"
	restaurantURL     = "/restaurant"
)

type template struct {
	title    string
	body     func(d map[string]string) string
	url      string
	required []string
}

func fixed(s string) func(map[string]string) string {
	return func(map[string]string) string { return s }
}

var templates = map[Type]template{
	OrderPlaced: {
		title: "Order Placed Successfully",
		body: func(d map[string]string) string {
			return fmt.Sprintf("Your order from %s has been placed successfully.", d["restaurantName"])
		},
		url:      customerOrdersURL,
		required: []string{"restaurantName", "orderId"},
	},
	OrderConfirmed: {
		title:    "Order Confirmed",
		body:     fixed("Your order has been confirmed by the restaurant."),
		url:      customerOrdersURL,
		required: []string{"orderId"},
	},
	OrderReady: {
		title:    "Order Ready",
		body:     fixed("Your order is ready for pickup/delivery."),
		url:      customerOrdersURL,
		required: []string{"orderId"},
	},
	OrderDelivered: {
		title:    "Order Delivered",
		body:     fixed("Your order has been delivered. Enjoy your meal!"),
		url:      customerOrdersURL,
		required: []string{"orderId"},
	},
	NewOrder: {
		title: "New Order Received",
		body: func(d map[string]string) string {
			return fmt.Sprintf("New order received for %s", d["restaurantName"])
		},
		url:      restaurantURL,
		required: []string{"restaurantName", "orderId", "amount"},
	},
}

// Known reports whether t belongs to the closed template set.
func Known(t Type) bool {
	_, ok := templates[t]
	return ok
}

// Rendered is a notification ready for the inbox and the push channel.
// Data holds every input field as text plus type, url and timestamp.
type Rendered struct {
	Type  Type
	Title string
	Body  string
	URL   string
	Data  map[string]string
}

// Render fills the template for t from data.
func Render(t Type, data map[string]any, now time.Time) (Rendered, error) {
	tpl, ok := templates[t]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	d := Stringify(data)
	for _, f := range tpl.required {
		if d[f] == "" {
			return Rendered{}, fmt.Errorf("%w: %s requires %s", ErrMissingField, t, f)
		}
	}
	d["type"] = string(t)
	d["url"] = tpl.url
	d["timestamp"] = now.UTC().Format(time.RFC3339Nano)

	return Rendered{
		Type:  t,
		Title: tpl.title,
		Body:  tpl.body(d),
		URL:   tpl.url,
		Data:  d,
	}, nil
}

// Stringify coerces every value to text.
func Stringify(data map[string]any) map[string]string {
	out := make(map[string]string, len(data)+3)
	for k, v := range data {
		switch x := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = x
		case time.Time:
			out[k] = x.UTC().Format(time.RFC3339Nano)
		case fmt.Stringer:
			out[k] = x.String()
		default:
			out[k] = fmt.Sprint(x)
		}
	}
	return out
}
