package mailer

import (
	"context"
	"testing"
	"time"
)

func TestQueueDeliversToConsumer(t *testing.T) {
	queue := NewQueue("noreply@ratehub.local", 4, nil)
	received := make(chan Message, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Consume(ctx, func(_ context.Context, message Message) error {
		received <- message
		return nil
	})

	if err := queue.SendConfirmationCode(ctx, "dana@example.com", "dana", "code-123"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	select {
	case message := <-received:
		if message.To != "dana@example.com" || message.Code != "code-123" {
			t.Fatalf("unexpected message %+v", message)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no message delivered")
	}
}

func TestBacklogFlushesToFirstConsumer(t *testing.T) {
	queue := NewQueue("noreply@ratehub.local", 1, nil)

	if err := queue.SendConfirmationCode(context.Background(), "early@example.com", "early", "code-1"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	// Past the bound the message is dropped, not queued.
	if err := queue.SendConfirmationCode(context.Background(), "late@example.com", "late", "code-2"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	received := make(chan Message, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Consume(ctx, func(_ context.Context, message Message) error {
		received <- message
		return nil
	})

	select {
	case message := <-received:
		if message.To != "early@example.com" {
			t.Fatalf("unexpected message %+v", message)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("backlogged message not delivered")
	}
	select {
	case message := <-received:
		t.Fatalf("message beyond the backlog bound should be dropped, got %+v", message)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSendWithoutConsumerDoesNotBlock(t *testing.T) {
	queue := NewQueue("noreply@ratehub.local", 1, nil)

	done := make(chan struct{})
	go func() {
		_ = queue.SendConfirmationCode(context.Background(), "a@example.com", "a", "x")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("send blocked with no consumer attached")
	}
}
