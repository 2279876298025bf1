package clock

import "testing"

func TestSchedulerFiresAtExpiry(t *testing.T) {
	c := New()
	s := NewScheduler(c)

	fired := false
	s.Register(BasisTicks, 100, func() { fired = true })

	c.Advance(99)
	s.Advance()
	if fired {
		t.Fatal("callback fired before its scheduled tick")
	}

	c.Advance(1)
	s.Advance()
	if !fired {
		t.Fatal("callback did not fire at its scheduled tick")
	}
}

func TestSchedulerExpireCancels(t *testing.T) {
	c := New()
	s := NewScheduler(c)

	fired := false
	req := s.Register(BasisTicks, 10, func() { fired = true })
	req.Expire()

	c.Advance(100)
	s.Advance()
	if fired {
		t.Fatal("expired callback must never fire")
	}
}

func TestSchedulerOrdersEqualTicksByRegistration(t *testing.T) {
	c := New()
	s := NewScheduler(c)

	var order []int
	s.Register(BasisTicks, 50, func() { order = append(order, 1) })
	s.Register(BasisTicks, 50, func() { order = append(order, 2) })
	s.Register(BasisTicks, 50, func() { order = append(order, 3) })

	c.Advance(50)
	s.Advance()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected registration order [1 2 3], got %v", order)
	}
}

func TestSchedulerMicrosecondBasis(t *testing.T) {
	c := New()
	s := NewScheduler(c)

	fired := false
	s.Register(BasisMicroseconds, 30, func() { fired = true })

	want := uint64(30) * TicksPerSecond / 1_000_000
	c.Advance(want - 1)
	s.Advance()
	if fired {
		t.Fatal("fired one tick early")
	}
	c.Advance(1)
	s.Advance()
	if !fired {
		t.Fatal("did not fire at the converted tick count")
	}
}

func TestSchedulerRearmEquivalentToExpireThenRegister(t *testing.T) {
	c := New()
	s := NewScheduler(c)

	var fireCount int
	req := s.Register(BasisTicks, 10, func() { fireCount++ })
	req.Expire()
	s.Register(BasisTicks, 20, func() { fireCount++ })

	c.Advance(20)
	s.Advance()
	if fireCount != 1 {
		t.Fatalf("expected exactly one fire after rearm, got %d", fireCount)
	}
}
