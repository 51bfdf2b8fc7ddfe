package session

import "testing"

func TestNewSweeper(t *testing.T) {
	m := newManager(t)

	if _, err := NewSweeper(nil, "", nil); err == nil {
		t.Error("expected error for nil manager")
	}
	if _, err := NewSweeper(m, "not a schedule", nil); err == nil {
		t.Error("expected error for invalid cron expression")
	}

	s, err := NewSweeper(m, "", nil)
	if err != nil {
		t.Fatalf("NewSweeper: %v", err)
	}
	if s.schedule != DefaultSweepSchedule {
		t.Errorf("schedule = %q, want default", s.schedule)
	}

	s.Start()
	s.Stop()
}
