package capture

import (
	"errors"
	"testing"
)

type fakeEnumerator struct {
	devices []DeviceInfo
	err     error
}

func (f *fakeEnumerator) Devices() ([]DeviceInfo, error) {
	return f.devices, f.err
}

func TestSelect_PrefersBackFacing(t *testing.T) {
	devices := []DeviceInfo{
		{ID: "front", Facing: FacingFront},
		{ID: "back", Facing: FacingBack},
	}

	got, err := Select(devices)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if got.ID != "back" {
		t.Errorf("Expected back-facing device, got %s", got.ID)
	}
}

func TestSelect_FallsBackToAnyCamera(t *testing.T) {
	devices := []DeviceInfo{
		{ID: "front", Facing: FacingFront},
		{ID: "other", Facing: FacingUnknown},
	}

	got, err := Select(devices)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if got.ID != "front" {
		t.Errorf("Expected first available device, got %s", got.ID)
	}
}

func TestSelect_NoCamera(t *testing.T) {
	_, err := Select(nil)
	if !errors.Is(err, ErrNoCamera) {
		t.Errorf("Expected ErrNoCamera, got %v", err)
	}
}

func TestAcquire_ReleasesExactlyOnce(t *testing.T) {
	enum := &fakeEnumerator{devices: []DeviceInfo{{ID: "back", Facing: FacingBack}}}

	released := 0
	stream, err := Acquire(enum, func(d DeviceInfo) (func(), error) {
		return func() { released++ }, nil
	})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if stream.Device().ID != "back" {
		t.Errorf("Expected the selected device on the stream, got %s", stream.Device().ID)
	}

	stream.Close()
	stream.Close()
	if released != 1 {
		t.Errorf("Expected release to run exactly once, ran %d times", released)
	}
}

func TestAcquire_OpenFailure(t *testing.T) {
	enum := &fakeEnumerator{devices: []DeviceInfo{{ID: "cam"}}}

	openErr := errors.New("device busy")
	_, err := Acquire(enum, func(d DeviceInfo) (func(), error) {
		return nil, openErr
	})
	if !errors.Is(err, openErr) {
		t.Errorf("Expected the open error to propagate, got %v", err)
	}
}

func TestAcquire_EnumerationFailure(t *testing.T) {
	enumErr := errors.New("permission denied")
	_, err := Acquire(&fakeEnumerator{err: enumErr}, func(d DeviceInfo) (func(), error) {
		t.Error("open must not be called when enumeration fails")
		return nil, nil
	})
	if !errors.Is(err, enumErr) {
		t.Errorf("Expected the enumeration error to propagate, got %v", err)
	}
}
