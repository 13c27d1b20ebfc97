package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockCorpusChecker struct {
	exists bool
	err    error
}

func (m *mockCorpusChecker) Exists(_ context.Context, _ string) (bool, error) {
	return m.exists, m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCorpusChecker{exists: true}, "capstones")
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["corpus"] != CheckOK {
		t.Errorf("expected corpus %q, got %q", CheckOK, r.Checks["corpus"])
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, &mockCorpusChecker{exists: true}, "capstones")
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["corpus"] != CheckOK {
		t.Errorf("expected corpus %q, got %q", CheckOK, r.Checks["corpus"])
	}
}

func TestCheck_CorpusMissing(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCorpusChecker{exists: false}, "capstones")
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["corpus"] != CheckError {
		t.Errorf("expected corpus %q, got %q", CheckError, r.Checks["corpus"])
	}
}

func TestCheck_CorpusCheckError(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCorpusChecker{err: errors.New("scan failed")}, "capstones")
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["corpus"] != CheckError {
		t.Error("expected corpus error")
	}
}

func TestCheck_NoCorpusChecker(t *testing.T) {
	svc := New(&mockDBPinger{}, nil, "")
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["corpus"]; ok {
		t.Error("corpus check should be absent when no checker is wired")
	}
}

func TestCheck_NoSeedName(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCorpusChecker{exists: true}, "")
	r := svc.Check(context.Background())

	if _, ok := r.Checks["corpus"]; ok {
		t.Error("corpus check should be absent without a seed corpus name")
	}
}
