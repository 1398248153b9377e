package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/MikeMC777/foodorders/internal/user"
)

// Publisher is the part of *amqp.Channel used to enqueue jobs.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher enqueues jobs on a durable queue for notify-worker.
type AMQPPublisher struct {
	ch    Publisher
	queue string
}

func NewAMQPPublisher(ch Publisher, queue string) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, queue: queue}
}

func (p *AMQPPublisher) Dispatch(_ context.Context, job Job) {
	body, err := json.Marshal(job)
	if err != nil {
		slog.Error("encode notification job", "user_id", job.UserID, "type", job.Type, "error", err)
		return
	}
	err = p.ch.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(job.Type),
		Body:         body,
	})
	if err != nil {
		slog.Error("publish notification job", "queue", p.queue, "user_id", job.UserID, "type", job.Type, "error", err)
	}
}

// Consumer drains the job queue into a Handler.
type Consumer struct {
	h       Handler
	timeout time.Duration
}

func NewConsumer(h Handler, timeout time.Duration) *Consumer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Consumer{h: h, timeout: timeout}
}

// Run handles deliveries until ctx is done or the channel closes.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	slog.Info("notification consumer started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("notification consumer shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				slog.Warn("notification delivery channel closed")
				return
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var job Job
	if err := json.Unmarshal(d.Body, &job); err != nil || job.UserID == "" {
		slog.Error("drop undecodable notification job", "delivery_tag", d.DeliveryTag, "error", err)
		_ = d.Nack(false, false)
		return
	}

	jctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := run(jctx, c.h, job)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrUnknownType), errors.Is(err, ErrMissingField), errors.Is(err, user.ErrNotFound):
		_ = d.Nack(false, false)
	case d.Redelivered:
		_ = d.Nack(false, false)
	default:
		// one redelivery for store errors
		_ = d.Nack(false, true)
	}
}
