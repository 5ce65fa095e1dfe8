package mailer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Message is one outbound confirmation email.
type Message struct {
	To       string
	Username string
	Code     string
	QueuedAt time.Time
}

// Queue is the confirmation-mail dispatch queue. Enqueue is cheap and
// non-blocking so signup latency never depends on mail transport; a
// worker drains the queue with Consume. Current implementation is
// in-process while SMTP wiring is finalized.
type Queue struct {
	mu        sync.Mutex
	consumers []chan Message
	backlog   []Message
	from      string
	capacity  int
	logger    *slog.Logger
}

func NewQueue(from string, capacity int, logger *slog.Logger) *Queue {
	if capacity <= 0 {
		capacity = 128
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{from: from, capacity: capacity, logger: logger}
}

// SendConfirmationCode enqueues the code for asynchronous delivery.
// Messages sent before any consumer attaches are held in a bounded
// backlog and handed to the first consumer; past that bound, and for a
// consumer with a full buffer, the message is dropped. The signup flow
// allows the account holder to request a fresh code at any time.
func (q *Queue) SendConfirmationCode(_ context.Context, email string, username string, code string) error {
	message := Message{
		To:       email,
		Username: username,
		Code:     code,
		QueuedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	consumers := append([]chan Message(nil), q.consumers...)
	if len(consumers) == 0 {
		if len(q.backlog) >= q.capacity {
			q.mu.Unlock()
			q.logger.Warn("dropping confirmation mail, backlog full and no consumer attached",
				"event", "mail_enqueue_drop",
				"module", "internal/platform/mailer",
				"layer", "platform",
				"to", email,
			)
			return nil
		}
		q.backlog = append(q.backlog, message)
	}
	q.mu.Unlock()

	for _, consumer := range consumers {
		select {
		case consumer <- message:
		default:
			q.logger.Warn("dropping confirmation mail for slow consumer",
				"event", "mail_enqueue_drop",
				"module", "internal/platform/mailer",
				"layer", "platform",
				"to", email,
			)
		}
	}

	q.logger.Info("confirmation mail queued",
		"event", "mail_queued",
		"module", "internal/platform/mailer",
		"layer", "platform",
		"from", q.from,
		"to", email,
		"username", username,
	)
	return nil
}

// Consume delivers queued messages to handler until ctx is cancelled.
// The first consumer also receives any backlog accumulated before it
// attached.
func (q *Queue) Consume(ctx context.Context, handler func(context.Context, Message) error) {
	ch := make(chan Message, q.capacity)

	q.mu.Lock()
	for _, message := range q.backlog {
		ch <- message
	}
	q.backlog = nil
	q.consumers = append(q.consumers, ch)
	q.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.removeConsumer(ch)
				return
			case message := <-ch:
				if err := handler(ctx, message); err != nil {
					q.logger.Error("mail delivery failed",
						"event", "mail_delivery_failed",
						"module", "internal/platform/mailer",
						"layer", "platform",
						"to", message.To,
						"error", err.Error(),
					)
				}
			}
		}
	}()
}

func (q *Queue) removeConsumer(target chan Message) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.consumers) == 0 {
		return
	}
	filtered := make([]chan Message, 0, len(q.consumers))
	for _, consumer := range q.consumers {
		if consumer != target {
			filtered = append(filtered, consumer)
		}
	}
	q.consumers = filtered
}
