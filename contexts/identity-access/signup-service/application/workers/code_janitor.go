package workers

import (
	"context"
	"log/slog"
	"time"

	"ratehub/contexts/identity-access/signup-service/ports"
)

// StaleCodeStore prunes confirmation codes by issue time.
type StaleCodeStore interface {
	DeleteCodesIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CodeJanitor removes confirmation codes past their useful life. A pruned
// code is not an account deletion; the holder just requests a new one.
type CodeJanitor struct {
	Codes  StaleCodeStore
	Clock  ports.Clock
	TTL    time.Duration
	Logger *slog.Logger
}

func (j CodeJanitor) RunOnce(ctx context.Context) error {
	cutoff := j.now().Add(-j.ttl())
	pruned, err := j.Codes.DeleteCodesIssuedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if pruned > 0 && j.Logger != nil {
		j.Logger.Info("stale confirmation codes pruned",
			"event", "signup_codes_pruned",
			"module", "identity-access/signup-service",
			"layer", "application",
			"pruned", pruned,
			"cutoff", cutoff,
		)
	}
	return nil
}

func (j CodeJanitor) now() time.Time {
	if j.Clock == nil {
		return time.Now().UTC()
	}
	return j.Clock.Now().UTC()
}

func (j CodeJanitor) ttl() time.Duration {
	if j.TTL <= 0 {
		return 24 * time.Hour
	}
	return j.TTL
}
