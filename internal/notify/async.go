package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one queued notify call.
type Job struct {
	UserID string         `json:"user_id"`
	Type   Type           `json:"type"`
	Data   map[string]any `json:"data"`
}

// Handler runs a notify call. *Dispatcher implements it.
type Handler interface {
	Notify(ctx context.Context, userID string, t Type, data map[string]any) (Result, error)
}

// Async runs every job on its own goroutine, detached from the caller's
// context. Failures are logged and never reach the caller.
type Async struct {
	h       Handler
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(h Handler, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Async{h: h, timeout: timeout}
}

func (a *Async) Dispatch(ctx context.Context, job Job) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				slog.Error("notification job panicked", "user_id", job.UserID, "type", job.Type, "panic", p)
			}
		}()

		jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		run(jctx, a.h, job)
	}()
}

// Wait blocks until every dispatched job has finished.
func (a *Async) Wait() { a.wg.Wait() }

func run(ctx context.Context, h Handler, job Job) error {
	res, err := h.Notify(ctx, job.UserID, job.Type, job.Data)
	if err != nil {
		slog.Error("notification failed",
			"user_id", job.UserID,
			"type", job.Type,
			"order_id", job.Data["orderId"],
			"error", err,
		)
		return err
	}
	slog.Info("notification sent",
		"user_id", job.UserID,
		"type", job.Type,
		"order_id", job.Data["orderId"],
		"success_count", res.SuccessCount,
		"failure_count", res.FailureCount,
		"pruned", len(res.Pruned),
	)
	return nil
}
