package workers

import (
	"context"
	"testing"
	"time"

	"ratehub/contexts/identity-access/signup-service/adapters/memory"
	"ratehub/contexts/identity-access/signup-service/ports"
)

func TestJanitorPrunesOnlyStaleCodes(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()

	stale := ports.ConfirmationCode{AccountID: "old", Code: "aaaa", IssuedAt: now.Add(-48 * time.Hour)}
	fresh := ports.ConfirmationCode{AccountID: "new", Code: "bbbb", IssuedAt: now.Add(-time.Hour)}
	for _, code := range []ports.ConfirmationCode{stale, fresh} {
		if err := store.PutCode(context.Background(), code); err != nil {
			t.Fatalf("put code: %v", err)
		}
	}

	janitor := CodeJanitor{Codes: store, TTL: 24 * time.Hour}
	if err := janitor.RunOnce(context.Background()); err != nil {
		t.Fatalf("janitor failed: %v", err)
	}

	if _, found, _ := store.GetCode(context.Background(), "old"); found {
		t.Fatalf("stale code survived pruning")
	}
	if _, found, _ := store.GetCode(context.Background(), "new"); !found {
		t.Fatalf("fresh code was pruned")
	}
}
