// Package capture models the camera device boundary as scoped resource
// acquisition: a stream is acquired once, held exclusively and released on
// every exit path through an idempotent Close.
//
// Selection prefers a rear-facing device for document photography and falls
// back to any available camera; only a machine with no camera at all is a
// hard error. Actual device plumbing lives behind the Enumerator interface,
// outside this package.
package capture

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoCamera is returned when no capture device is available at all.
var ErrNoCamera = errors.New("no camera device available")

// Facing describes which way a capture device points.
type Facing int

const (
	FacingUnknown Facing = iota
	FacingFront
	FacingBack
)

// DeviceInfo identifies one capture device.
type DeviceInfo struct {
	ID     string
	Label  string
	Facing Facing
}

// Enumerator lists the capture devices currently attached.
type Enumerator interface {
	Devices() ([]DeviceInfo, error)
}

// Stream is an exclusive handle on an open capture device. Close releases it
// and may be called any number of times.
type Stream struct {
	device  DeviceInfo
	release func()
	once    sync.Once
}

// Device returns the device this stream was opened on.
func (s *Stream) Device() DeviceInfo {
	return s.device
}

// Close releases the underlying device. Idempotent.
func (s *Stream) Close() {
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}

// Select picks the device to open: the first back-facing one when present,
// otherwise the first device of any kind.
func Select(devices []DeviceInfo) (DeviceInfo, error) {
	if len(devices) == 0 {
		return DeviceInfo{}, ErrNoCamera
	}
	for _, d := range devices {
		if d.Facing == FacingBack {
			return d, nil
		}
	}
	return devices[0], nil
}

// Acquire enumerates devices, selects one and returns the open stream. The
// release callback runs exactly once when the stream is closed.
func Acquire(enum Enumerator, open func(DeviceInfo) (release func(), err error)) (*Stream, error) {
	devices, err := enum.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate capture devices: %w", err)
	}

	device, err := Select(devices)
	if err != nil {
		return nil, err
	}

	release, err := open(device)
	if err != nil {
		return nil, fmt.Errorf("open capture device %s: %w", device.ID, err)
	}
	return &Stream{device: device, release: release}, nil
}
