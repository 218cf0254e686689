package serial

import (
	"errors"
	"sync"
)

// fakeDevice is an in-memory Device double used by worker and hub tests in
// place of a real serial port.
type fakeDevice struct {
	mu       sync.Mutex
	inbox    chan []byte // data delivered to Read
	written  [][]byte    // every payload passed to WriteAll
	closed   bool
	writeErr error
	readErr  error
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{inbox: make(chan []byte, 64)}
}

func (f *fakeDevice) deliver(data []byte) { f.inbox <- data }

func (f *fakeDevice) Read(buf []byte) (int, error) {
	f.mu.Lock()
	if f.readErr != nil {
		err := f.readErr
		f.mu.Unlock()
		return 0, err
	}
	f.mu.Unlock()

	select {
	case data, ok := <-f.inbox:
		if !ok {
			return 0, errors.New("device closed")
		}
		n := copy(buf, data)
		return n, nil
	default:
		return 0, nil // simulate a read-timeout tick
	}
}

func (f *fakeDevice) WriteAll(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.written = append(f.written, cp)
	return nil
}

func (f *fakeDevice) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.inbox)
	}
	return nil
}

func (f *fakeDevice) TryDuplicate() (Device, error) { return f, nil }

func (f *fakeDevice) writtenPayloads() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.written))
	copy(out, f.written)
	return out
}
