package display

import (
	"testing"

	"github.com/crispvm/go-chip8/pkg/display/event"
)

type fakeDriver struct{ name string }

func (d *fakeDriver) Initialize(Emulator) {}
func (d *fakeDriver) Start(<-chan []byte, <-chan event.Event, chan<- Input) error {
	return nil
}
func (d *fakeDriver) Stop() error { return nil }

func TestGetDriver(t *testing.T) {
	first := &fakeDriver{name: "first"}
	second := &fakeDriver{name: "second"}
	Install("first", first, nil)
	Install("second", second, nil)

	if got := GetDriver("second"); got != second {
		t.Errorf("expected the second driver, got %v", got)
	}
	if got := GetDriver("auto"); got == nil {
		t.Error("expected auto to resolve to an installed driver")
	}
	if got := GetDriver("missing"); got != nil {
		t.Errorf("expected nil for an unknown driver, got %v", got)
	}
}
