package devserver

import (
	"testing"
	"time"

	"github.com/LanderDK/blitzware-client/internal/models"
)

func TestPruneLogs_RemovesOnlyExpiredEntries(t *testing.T) {
	store := NewStore()
	id := store.SeedAccount("dev", "dev", "dev@blitzware.local", []string{"admin"})

	old := time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339)
	store.AppendLog(id, models.LogEntry{Username: "dev", Action: "login", Date: old})
	store.AppendLog(id, models.LogEntry{Username: "dev", Action: "login"})
	store.AppendAppLog(models.AppLogEntry{ApplicationID: "app1", Action: "auth", Date: old})

	removed := store.pruneLogs(time.Now().Add(-24 * time.Hour))
	if removed != 2 {
		t.Errorf("removed = %d; want 2", removed)
	}

	logs := store.Logs(id)
	if len(logs) != 1 {
		t.Fatalf("remaining logs = %d; want 1", len(logs))
	}
	if logs[0].Date == old {
		t.Error("expired entry survived the prune")
	}
	if got := store.AppLogs("app1"); len(got) != 0 {
		t.Errorf("remaining app logs = %d; want 0", len(got))
	}
}

func TestPruneLogs_KeepsUnparseableDates(t *testing.T) {
	store := NewStore()
	id := store.SeedAccount("dev", "dev", "dev@blitzware.local", []string{"admin"})
	store.AppendLog(id, models.LogEntry{Username: "dev", Action: "login", Date: "not-a-date"})

	if removed := store.pruneLogs(time.Now()); removed != 0 {
		t.Errorf("removed = %d; want 0", removed)
	}
	if len(store.Logs(id)) != 1 {
		t.Error("entry with unparseable date was pruned")
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)

	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != "u1" {
		t.Errorf("subject = %q; want u1", got)
	}
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), -time.Minute)

	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}
