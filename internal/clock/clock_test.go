package clock

import "testing"

func TestClockAdvanceIsMonotonic(t *testing.T) {
	c := New()
	var last uint64
	for i := 0; i < 10; i++ {
		c.Advance(1000)
		if c.TickCount < last {
			t.Fatalf("tick count decreased: %d < %d", c.TickCount, last)
		}
		last = c.TickCount
	}
	if c.TickCount != 10000 {
		t.Errorf("expected TickCount 10000, got %d", c.TickCount)
	}
}

func TestClockWaitIsAdvisory(t *testing.T) {
	c := New()
	c.Wait(5000)
	if c.LastWait() != 5000 {
		t.Errorf("expected LastWait 5000, got %d", c.LastWait())
	}
	if c.TickCount != 0 {
		t.Errorf("Wait must not itself advance the clock, got TickCount=%d", c.TickCount)
	}
}
