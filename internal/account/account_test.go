package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"listical-cli/internal/store"
)

const (
	userA = "11111111-2222-3333-4444-555555555555"
	userB = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
)

func testService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(store.Store{Dir: t.TempDir()})
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return base }
	return svc
}

func TestValidateUserID(t *testing.T) {
	cases := []struct {
		id string
		ok bool
	}{
		{userA, true},
		{"AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE", true},
		{"", false},
		{"not-a-uuid", false},
		{"11111111222233334444555555555555", false},
		{"11111111-2222-3333-4444-55555555555g", false},
	}
	for _, tc := range cases {
		err := ValidateUserID(tc.id)
		if tc.ok && err != nil {
			t.Fatalf("%q: unexpected error %v", tc.id, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected rejection", tc.id)
		}
	}
}

func TestRequestDeletionLifecycle(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.EnsureProfile(ctx, userA, "A"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := svc.RequestDeletion(ctx, userA); err != nil {
		t.Fatalf("request: %v", err)
	}

	// Inside the grace period nothing is purged.
	res, err := svc.PurgeDue(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if res.Processed != 0 {
		t.Fatalf("purged during grace period: %+v", res)
	}

	// Past the grace period the profile goes.
	svc.Now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(DefaultGracePeriod + time.Minute)
	}
	res, err = svc.PurgeDue(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if res.Processed != 1 || res.Succeeded != 1 || res.Failed != 0 {
		t.Fatalf("purge result = %+v", res)
	}

	trail, err := svc.AuditTrail(ctx, userA)
	if err != nil {
		t.Fatalf("trail: %v", err)
	}
	actions := make([]string, 0, len(trail))
	for _, e := range trail {
		actions = append(actions, e.Action)
	}
	want := []string{"deletion-requested", "deleted"}
	if len(actions) != len(want) || actions[0] != want[0] || actions[1] != want[1] {
		t.Fatalf("audit trail = %v", actions)
	}
}

func TestRequestDeletionRateLimit(t *testing.T) {
	svc := testService(t)
	svc.RateLimit = 2
	ctx := context.Background()

	if err := svc.EnsureProfile(ctx, userA, "A"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := svc.RequestDeletion(ctx, userA); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := svc.RequestDeletion(ctx, userA); err != nil {
		t.Fatalf("second request: %v", err)
	}
	if err := svc.RequestDeletion(ctx, userA); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("third request err = %v, want rate limited", err)
	}

	// The window is fixed: once it lapses, attempts pass again.
	svc.Now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(DefaultRateWindow + time.Minute)
	}
	if err := svc.RequestDeletion(ctx, userA); err != nil {
		t.Fatalf("request after window: %v", err)
	}
}

func TestRequestDeletionUnknownProfile(t *testing.T) {
	svc := testService(t)
	if err := svc.RequestDeletion(context.Background(), userA); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("err = %v, want no-profile", err)
	}
}

func TestCancelDeletion(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.EnsureProfile(ctx, userA, "A"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := svc.RequestDeletion(ctx, userA); err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := svc.CancelDeletion(ctx, userA); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	svc.Now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(DefaultGracePeriod + time.Minute)
	}
	res, err := svc.PurgeDue(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if res.Processed != 0 {
		t.Fatalf("cancelled request still purged: %+v", res)
	}
}

func TestPurgeBatchIsolation(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	for _, id := range []string{userA, userB} {
		if err := svc.EnsureProfile(ctx, id, "x"); err != nil {
			t.Fatalf("ensure %s: %v", id, err)
		}
		if err := svc.RequestDeletion(ctx, id); err != nil {
			t.Fatalf("request %s: %v", id, err)
		}
	}

	svc.Now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(DefaultGracePeriod + time.Minute)
	}
	res, err := svc.PurgeDue(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if res.Processed != 2 || res.Succeeded != 2 {
		t.Fatalf("purge result = %+v", res)
	}

	// Hashes, never raw ids, in the audit log.
	db, err := svc.Store.OpenDB(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log WHERE user_hash IN (?, ?)`, userA, userB).Scan(&n); err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 0 {
		t.Fatalf("raw user ids leaked into audit_log")
	}
}
