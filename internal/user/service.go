package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeMC777/foodorders/internal/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

type Service struct {
	repo   Repository
	issuer *auth.Issuer
}

func NewService(repo Repository, issuer *auth.Issuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Register creates an account with the given role.
func (s *Service) Register(ctx context.Context, in RegisterRequest, role auth.Role) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	if in.Username == "" || in.MobileNumber == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		MobileNumber: in.MobileNumber,
		PasswordHash: hash,
		Role:         role,
		Address:      in.Address,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, mobile, password string) (string, *User, error) {
	if mobile == "" || password == "" {
		return "", nil, ErrInvalidInput
	}
	u, err := s.repo.GetByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !u.IsActive || !CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := s.issuer.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// EnsureAdmin seeds an admin account when none exists for mobile.
func (s *Service) EnsureAdmin(ctx context.Context, mobile, password string) error {
	if mobile == "" || password == "" {
		return nil
	}
	_, err := s.repo.GetByMobile(ctx, mobile)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err = s.Register(ctx, RegisterRequest{Username: "admin", MobileNumber: mobile, Password: password}, auth.RoleAdmin)
	if errors.Is(err, ErrAlreadyExist) {
		return nil
	}
	return err
}

func (s *Service) RegisterPushToken(ctx context.Context, userID, token, device string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidInput
	}
	if device == "" {
		device = "web"
	}
	return s.repo.UpsertPushToken(ctx, userID, PushToken{Token: token, Device: device})
}

func (s *Service) RemovePushToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidInput
	}
	return s.repo.RemovePushTokens(ctx, userID, []string{token})
}

func (s *Service) Inbox(ctx context.Context, userID string) (*Inbox, error) {
	ns, err := s.repo.ListNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ns == nil {
		ns = []Notification{}
	}
	unread := 0
	for _, n := range ns {
		if !n.IsRead {
			unread++
		}
	}
	return &Inbox{Notifications: ns, UnreadCount: unread}, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.repo.MarkNotificationRead(ctx, userID, notificationID)
}

func (s *Service) ClearInbox(ctx context.Context, userID string) error {
	return s.repo.ClearNotifications(ctx, userID)
}
