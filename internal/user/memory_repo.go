package user

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo implements Repository with in-memory storage. order-service
// uses it when MONGO_URI is "memory".
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]*User // id -> user
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]*User)}
}

func (m *MemoryRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.ID == u.ID || (u.MobileNumber != "" && existing.MobileNumber == u.MobileNumber) {
			return ErrAlreadyExist
		}
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	m.users[u.ID] = cloneUser(u)
	return nil
}

func (m *MemoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *MemoryRepo) GetByMobile(_ context.Context, mobile string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.MobileNumber == mobile {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) UpsertPushToken(_ context.Context, userID string, t PushToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	if t.LastUsed.IsZero() {
		t.LastUsed = time.Now().UTC()
	}
	for i := range u.PushTokens {
		if u.PushTokens[i].Token == t.Token {
			u.PushTokens[i].LastUsed = t.LastUsed
			u.PushTokens[i].Device = t.Device
			return nil
		}
	}
	u.PushTokens = append(u.PushTokens, t)
	return nil
}

func (m *MemoryRepo) RemovePushTokens(_ context.Context, userID string, tokens []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	drop := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		drop[t] = struct{}{}
	}
	kept := u.PushTokens[:0]
	for _, t := range u.PushTokens {
		if _, ok := drop[t.Token]; !ok {
			kept = append(kept, t)
		}
	}
	u.PushTokens = kept
	return nil
}

func (m *MemoryRepo) AppendNotification(_ context.Context, userID string, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Notifications = append(u.Notifications, n)
	return nil
}

func (m *MemoryRepo) ListNotifications(_ context.Context, userID string) ([]Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := append([]Notification(nil), u.Notifications...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) MarkNotificationRead(_ context.Context, userID, notificationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	for i := range u.Notifications {
		if u.Notifications[i].ID == notificationID {
			u.Notifications[i].IsRead = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (m *MemoryRepo) ClearNotifications(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Notifications = nil
	return nil
}

func cloneUser(u *User) *User {
	cp := *u
	cp.PushTokens = append([]PushToken(nil), u.PushTokens...)
	cp.Notifications = append([]Notification(nil), u.Notifications...)
	return &cp
}
