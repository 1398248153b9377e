package user

import (
	"time"

	"github.com/MikeMC777/foodorders/internal/auth"
)

// User is stored as a single Mongo document that owns its inbox and its
// push-token set.
type User struct {
	ID            string         `bson:"_id"                     json:"id"`
	Username      string         `bson:"username"                json:"username"`
	MobileNumber  string         `bson:"mobile_number"           json:"mobileNumber"`
	PasswordHash  string         `bson:"password_hash"           json:"-"`
	Role          auth.Role      `bson:"role"                    json:"role"`
	RestaurantID  string         `bson:"restaurant_id,omitempty" json:"restaurantId,omitempty"`
	Address       string         `bson:"address"                 json:"address"`
	IsActive      bool           `bson:"is_active"               json:"isActive"`
	PushTokens    []PushToken    `bson:"push_tokens"             json:"-"`
	Notifications []Notification `bson:"notifications"           json:"-"`
	CreatedAt     time.Time      `bson:"created_at"              json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updated_at"              json:"updatedAt"`
}

// PushToken is unique by Token within a user.
type PushToken struct {
	Token    string    `bson:"token"     json:"token"`
	Device   string    `bson:"device"    json:"device"`
	LastUsed time.Time `bson:"last_used" json:"lastUsed"`
}

type Notification struct {
	ID        string            `bson:"id"         json:"id"`
	Title     string            `bson:"title"      json:"title"`
	Message   string            `bson:"message"    json:"message"`
	Type      string            `bson:"type"       json:"type"`
	IsRead    bool              `bson:"is_read"    json:"isRead"`
	Data      map[string]string `bson:"data"       json:"data,omitempty"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
}

// TokenValues returns the distinct token strings in registration order.
func (u *User) TokenValues() []string {
	seen := make(map[string]struct{}, len(u.PushTokens))
	out := make([]string, 0, len(u.PushTokens))
	for _, t := range u.PushTokens {
		if _, ok := seen[t.Token]; ok || t.Token == "" {
			continue
		}
		seen[t.Token] = struct{}{}
		out = append(out, t.Token)
	}
	return out
}

// Inbox is the read view of a user's notifications.
// swagger:model Inbox
type Inbox struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// RegisterRequest payload of signup.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username     string `json:"username"     example:"ana"`
	MobileNumber string `json:"mobileNumber" example:"+573001112233"`
	Password     string `json:"password"     example:"secret123"`
	Address      string `json:"address"      example:"12 Lane"`
	Role         string `json:"role,omitempty" example:"user"`
}

// LoginRequest payload of login.
// swagger:model LoginRequest
type LoginRequest struct {
	MobileNumber string `json:"mobileNumber" example:"+573001112233"`
	Password     string `json:"password"     example:"secret123"`
}

// PushTokenRequest payload of push registration.
// swagger:model PushTokenRequest
type PushTokenRequest struct {
	Token  string `json:"token"  example:"fcm-token"`
	Device string `json:"device" example:"web"`
}
