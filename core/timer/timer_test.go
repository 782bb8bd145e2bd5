package timer

import (
	"reflect"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	current := time.Unix(0, 0)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func TestTimersAccumulate(t *testing.T) {
	tm := New()
	tm.now = fakeClock(time.Second)

	for i := 0; i < 3; i++ {
		if err := tm.Start("prediction"); err != nil {
			t.Fatal(err)
		}
		if err := tm.Stop("prediction"); err != nil {
			t.Fatal(err)
		}
	}

	if got := tm.Get("prediction"); got != 3*time.Second {
		t.Errorf("Get = %v, want 3s", got)
	}
	if got := tm.Count("prediction"); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestTimersMisuse(t *testing.T) {
	tm := New()
	if err := tm.Stop("load_model"); err == nil {
		t.Error("stopping a timer that never started should fail")
	}
	if err := tm.Start("load_model"); err != nil {
		t.Fatal(err)
	}
	if err := tm.Start("load_model"); err == nil {
		t.Error("starting a running timer should fail")
	}
}

func TestTimersNamesAndReset(t *testing.T) {
	tm := New()
	tm.now = fakeClock(time.Millisecond)

	_ = tm.Start("load_test_points")
	_ = tm.Stop("load_test_points")
	_ = tm.Start("load_model")

	want := []string{"load_model", "load_test_points"}
	if got := tm.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	if tm.Get("load_model") <= 0 {
		t.Error("running timer should report elapsed time")
	}

	tm.StopAll()
	if tm.Count("load_model") != 1 {
		t.Error("StopAll should stop running timers")
	}

	tm.Reset()
	if len(tm.Names()) != 0 {
		t.Errorf("Reset left %v", tm.Names())
	}
	if tm.Get("load_model") != 0 {
		t.Error("Reset should clear totals")
	}
}
