package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MikeMC777/foodorders/internal/user"
)

// Store is the slice of the identity store the dispatcher writes to.
type Store interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
	AppendNotification(ctx context.Context, userID string, n user.Notification) error
	RemovePushTokens(ctx context.Context, userID string, tokens []string) error
}

// Result summarizes one notify call. The inbox entry is the only required
// side effect; push counts are informational.
type Result struct {
	NotificationID string   `json:"notificationId"`
	SuccessCount   int      `json:"successCount"`
	FailureCount   int      `json:"failureCount"`
	Pruned         []string `json:"pruned,omitempty"`
}

type Dispatcher struct {
	store       Store
	sender      Sender
	concurrency int
	now         func() time.Time
}

type Option func(*Dispatcher)

// WithConcurrency caps in-flight push sends per notify call. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) { d.concurrency = n }
}

func NewDispatcher(store Store, sender Sender, opts ...Option) *Dispatcher {
	if sender == nil {
		sender = LogSender{}
	}
	d := &Dispatcher{store: store, sender: sender, now: time.Now}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Notify renders t for userID, appends it to the user's inbox and pushes it
// to every registered token. Tokens whose delivery failed are pruned.
func (d *Dispatcher) Notify(ctx context.Context, userID string, t Type, data map[string]any) (Result, error) {
	r, err := Render(t, data, d.now())
	if err != nil {
		return Result{}, err
	}

	u, err := d.store.GetByID(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve recipient %s: %w", userID, err)
	}

	entry := user.Notification{
		ID:        uuid.NewString(),
		Title:     r.Title,
		Message:   r.Body,
		Type:      string(r.Type),
		IsRead:    false,
		Data:      r.Data,
		CreatedAt: d.now().UTC(),
	}
	if err := d.store.AppendNotification(ctx, userID, entry); err != nil {
		return Result{}, fmt.Errorf("store notification: %w", err)
	}
	res := Result{NotificationID: entry.ID}

	tokens := u.TokenValues()
	if len(tokens) == 0 {
		return res, nil
	}

	errs := d.fanOut(ctx, tokens, r)

	var failed []string
	for i, err := range errs {
		if err == nil {
			res.SuccessCount++
			continue
		}
		res.FailureCount++
		slog.Warn("push delivery failed", "user_id", userID, "type", t, "token", redact(tokens[i]), "error", err)
		if !errors.Is(err, ErrChannelUnavailable) {
			failed = append(failed, tokens[i])
		}
	}

	if len(failed) > 0 {
		if err := d.store.RemovePushTokens(ctx, userID, failed); err != nil {
			slog.Error("prune push tokens", "user_id", userID, "count", len(failed), "error", err)
		} else {
			res.Pruned = failed
		}
	}
	return res, nil
}

// fanOut sends to every token independently and waits for all of them.
// errs[i] is the outcome for tokens[i].
func (d *Dispatcher) fanOut(ctx context.Context, tokens []string, r Rendered) []error {
	errs := make([]error, len(tokens))

	var g errgroup.Group
	if d.concurrency > 0 {
		g.SetLimit(d.concurrency)
	}
	for i, tok := range tokens {
		g.Go(func() error {
			defer func() {
				if p := recover(); p != nil {
					errs[i] = fmt.Errorf("push sender panic: %v", p)
				}
			}()
			errs[i] = d.sender.Send(ctx, Message{
				Token: tok,
				Title: r.Title,
				Body:  r.Body,
				Data:  r.Data,
				Link:  r.URL,
			})
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
