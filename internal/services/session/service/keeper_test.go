package service

import (
	"context"
	"testing"
	"time"

	perr "cardsmith/internal/platform/errors"
	dom "cardsmith/internal/services/session/domain"
	"cardsmith/internal/services/session/repo"
)

func newTestKeeper(t *testing.T, cfg Config) (*Keeper, *repo.Memory, *time.Time) {
	t.Helper()
	mem := repo.NewMemory()
	k := NewKeeper(mem, cfg)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	k.now = func() time.Time { return now }
	return k, mem, &now
}

func TestRateCheckWindow(t *testing.T) {
	ctx := context.Background()
	k, _, now := newTestKeeper(t, Config{Quota: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		d, err := k.RateCheck(ctx, "u1")
		if err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if !d.Allowed {
			t.Fatalf("call %d should be allowed", i+1)
		}
		if want := 3 - (i + 1); d.Remaining != want {
			t.Fatalf("call %d remaining = %d, want %d", i+1, d.Remaining, want)
		}
		*now = now.Add(time.Second)
	}

	// fourth call inside the window is denied and must not be recorded
	d, err := k.RateCheck(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if d.Allowed {
		t.Fatal("fourth call inside the window should be denied")
	}
	if d.RetryAfter <= 0 {
		t.Fatalf("denied call should carry a positive retry hint, got %v", d.RetryAfter)
	}

	// 61s after the first call its slot has expired
	*now = now.Add(61 * time.Second)
	d, err = k.RateCheck(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Allowed {
		t.Fatal("call after the window slid should be allowed")
	}
}

func TestRateCheckIsolatesPrincipals(t *testing.T) {
	ctx := context.Background()
	k, _, _ := newTestKeeper(t, Config{Quota: 1, Window: time.Minute})

	if d, _ := k.RateCheck(ctx, "a"); !d.Allowed {
		t.Fatal("first call for a should pass")
	}
	if d, _ := k.RateCheck(ctx, "a"); d.Allowed {
		t.Fatal("second call for a should be denied")
	}
	if d, _ := k.RateCheck(ctx, "b"); !d.Allowed {
		t.Fatal("a's window must not affect b")
	}
}

func TestStartSessionConflict(t *testing.T) {
	ctx := context.Background()
	k, _, _ := newTestKeeper(t, Config{Quota: 3, Window: time.Minute})

	if err := k.StartSession(ctx, "u1", []string{"a", "b"}, ""); err != nil {
		t.Fatal(err)
	}
	err := k.StartSession(ctx, "u1", []string{"c"}, "")
	if err == nil {
		t.Fatal("second start with an active session should conflict")
	}
	if perr.CodeOf(err) != perr.ErrorCodeConflict {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestStartSessionSupersede(t *testing.T) {
	ctx := context.Background()
	k, _, _ := newTestKeeper(t, Config{Quota: 3, Window: time.Minute, Supersede: true})

	if err := k.StartSession(ctx, "u1", []string{"a", "b"}, ""); err != nil {
		t.Fatal(err)
	}
	if err := k.StartSession(ctx, "u1", []string{"x", "y", "z"}, ""); err != nil {
		t.Fatalf("supersede should replace the active session: %v", err)
	}
	snap, err := k.Progress(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Total != 3 || snap.Checked != 0 {
		t.Fatalf("superseding should reset progress, got %+v", snap)
	}
}

func TestStartSessionAfterFinishedRun(t *testing.T) {
	ctx := context.Background()
	k, _, _ := newTestKeeper(t, Config{Quota: 3, Window: time.Minute})

	if err := k.StartSession(ctx, "u1", []string{"a"}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := k.UpdateProgress(ctx, "u1", 0, dom.OutcomeLive, "a ok"); err != nil {
		t.Fatal(err)
	}
	// a finished run is not a conflict
	if err := k.StartSession(ctx, "u1", []string{"b", "c"}, ""); err != nil {
		t.Fatalf("start after a finished run should succeed: %v", err)
	}
}

func TestUpdateProgressTallies(t *testing.T) {
	ctx := context.Background()
	k, _, now := newTestKeeper(t, Config{Quota: 3, Window: time.Minute})

	items := []string{"a", "b", "c", "d"}
	if err := k.StartSession(ctx, "u1", items, "msg-7"); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		outcome dom.Outcome
		ratio   string
	}{
		{dom.OutcomeLive, "1/4"},
		{dom.OutcomeDie, "2/4"},
		{dom.OutcomeUnknown, "3/4"},
		{dom.OutcomeError, "4/4"},
	}
	for i, s := range steps {
		*now = now.Add(2 * time.Second)
		snap, err := k.UpdateProgress(ctx, "u1", i, s.outcome, items[i]+" checked")
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if snap.Ratio != s.ratio {
			t.Fatalf("item %d ratio = %q, want %q", i, snap.Ratio, s.ratio)
		}
		if snap.Checked != i+1 {
			t.Fatalf("item %d checked = %d", i, snap.Checked)
		}
	}

	snap, err := k.Progress(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	want := dom.Counts{Live: 1, Die: 1, Unknown: 1, Error: 1}
	if snap.Counts != want {
		t.Fatalf("counts = %+v, want %+v", snap.Counts, want)
	}
	if snap.Elapsed != 8*time.Second {
		t.Fatalf("elapsed = %v, want 8s", snap.Elapsed)
	}
	if len(snap.Results) != 4 || snap.Results[0] != "a checked" {
		t.Fatalf("results = %v", snap.Results)
	}
}

func TestUpdateProgressWithoutSession(t *testing.T) {
	ctx := context.Background()
	k, _, _ := newTestKeeper(t, Config{})

	_, err := k.UpdateProgress(ctx, "ghost", 0, dom.OutcomeLive, "")
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestUpdateProgressIndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	k, _, _ := newTestKeeper(t, Config{})

	if err := k.StartSession(ctx, "u1", []string{"a"}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := k.UpdateProgress(ctx, "u1", 5, dom.OutcomeLive, ""); err == nil {
		t.Fatal("out of range index should fail")
	}
}

func TestKeeperHydratesFromRepo(t *testing.T) {
	ctx := context.Background()
	k1, mem, _ := newTestKeeper(t, Config{Quota: 3, Window: time.Minute})

	if err := k1.StartSession(ctx, "u1", []string{"a", "b", "c"}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := k1.UpdateProgress(ctx, "u1", 0, dom.OutcomeLive, "a ok"); err != nil {
		t.Fatal(err)
	}

	// a fresh keeper over the same repo resumes where the old one stopped
	k2 := NewKeeper(mem, Config{Quota: 3, Window: time.Minute})
	snap, err := k2.Progress(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Checked != 1 || snap.Total != 3 {
		t.Fatalf("resumed snapshot = %+v", snap)
	}
	if snap.Counts.Live != 1 {
		t.Fatalf("resumed counts = %+v", snap.Counts)
	}
}

func TestProgressWithoutSession(t *testing.T) {
	ctx := context.Background()
	k, _, _ := newTestKeeper(t, Config{})

	snap, err := k.Progress(ctx, "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Ratio != "0/0" || snap.Total != 0 {
		t.Fatalf("empty snapshot = %+v", snap)
	}
}
