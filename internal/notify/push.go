package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sony/gobreaker/v2"
	"google.golang.org/api/option"
)

var (
	// ErrInvalidToken marks a token the channel reported as unregistered.
	ErrInvalidToken = errors.New("push token rejected")
	// ErrChannelUnavailable marks a send that never reached the channel.
	// Tokens are not pruned for it.
	ErrChannelUnavailable = errors.New("push channel unavailable")
)

const pushIcon = "/logo192.png"

// Message is one push delivery to one token.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
	Link  string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender only logs. Used when no push credentials are configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	slog.Info("push (log only)", "token", redact(msg.Token), "title", msg.Title, "type", msg.Data["type"])
	return nil
}

// NewPushSender returns an FCM sender behind a circuit breaker, or a
// LogSender when credentialsFile is empty.
func NewPushSender(ctx context.Context, credentialsFile, linkBase string) (Sender, error) {
	if credentialsFile == "" {
		slog.Warn("FCM credentials not configured, push notifications are logged only")
		return LogSender{}, nil
	}
	fcm, err := NewFCMSender(ctx, credentialsFile, linkBase)
	if err != nil {
		return nil, err
	}
	return NewBreakerSender(fcm, "fcm"), nil
}

type fcmClient interface {
	Send(ctx context.Context, m *messaging.Message) (string, error)
}

// FCMSender delivers through Firebase Cloud Messaging.
type FCMSender struct {
	client   fcmClient
	linkBase string
}

// NewFCMSender builds a messaging client from a service-account file.
// linkBase must be an https origin; click links are omitted without it.
func NewFCMSender(ctx context.Context, credentialsFile, linkBase string) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return &FCMSender{client: client, linkBase: strings.TrimRight(linkBase, "/")}, nil
}

func (s *FCMSender) Send(ctx context.Context, msg Message) error {
	m := &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Icon:               pushIcon,
				Badge:              pushIcon,
				RequireInteraction: true,
			},
		},
	}
	if strings.HasPrefix(s.linkBase, "https://") {
		link := msg.Link
		if link == "" {
			link = "/"
		}
		m.Webpush.FCMOptions = &messaging.WebpushFCMOptions{Link: s.linkBase + link}
	}

	if _, err := s.client.Send(ctx, m); err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return err
	}
	return nil
}

// BreakerSender stops calling the channel after repeated channel-level
// failures. Rejected tokens do not count against it.
type BreakerSender struct {
	next Sender
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerSender(next Sender, name string) *BreakerSender {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrInvalidToken)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("push breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &BreakerSender{next: next, cb: cb}
}

func (b *BreakerSender) Send(ctx context.Context, msg Message) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Send(ctx, msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	return err
}

func redact(tok string) string {
	if len(tok) <= 8 {
		return "***"
	}
	return tok[:4] + "..." + tok[len(tok)-4:]
}
