package ports

import "testing"

type fakeHandler struct {
	value uint8
}

func (f *fakeHandler) In() uint8        { return f.value }
func (f *fakeHandler) Out(value uint8)  { f.value = value }

func TestUnmappedPortReadsFF(t *testing.T) {
	b := NewBus()
	if got := b.In(0xF0); got != 0xFF {
		t.Errorf("unmapped port should read 0xFF, got 0x%02X", got)
	}
}

func TestInstalledHandlerRoundTrips(t *testing.T) {
	b := NewBus()
	h := &fakeHandler{}
	b.Install(0xF3, h)

	b.Out(0xF3, 0x42)
	if h.value != 0x42 {
		t.Fatalf("Out did not reach handler, got 0x%02X", h.value)
	}
	if got := b.In(0xF3); got != 0x42 {
		t.Errorf("In did not read through handler, got 0x%02X", got)
	}
}

func TestHandlerFuncNilSafe(t *testing.T) {
	h := HandlerFunc{}
	if got := h.In(); got != 0xFF {
		t.Errorf("nil InFunc should read 0xFF, got 0x%02X", got)
	}
	h.Out(0x01) // must not panic
}

func TestRemoveUnmaps(t *testing.T) {
	b := NewBus()
	b.Install(0xF0, &fakeHandler{value: 0x55})
	b.Remove(0xF0)
	if got := b.In(0xF0); got != 0xFF {
		t.Errorf("removed port should read 0xFF, got 0x%02X", got)
	}
}
