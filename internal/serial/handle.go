package serial

import (
	"sync"
	"time"

	"go.bug.st/serial"
)

// readTimeout bounds how long a single Read blocks. It must be short
// enough that a worker whose handle has been closed notices within one
// interval instead of hanging on the syscall (spec §3/§4.1).
const readTimeout = 10 * time.Millisecond

// Device is the narrow surface Worker needs from a port handle. *Handle
// implements it against a real OS device; tests substitute a fake so the
// reader/writer task logic can run without hardware.
type Device interface {
	Read(buf []byte) (int, error)
	WriteAll(data []byte) error
	Close() error
	TryDuplicate() (Device, error)
}

// Handle wraps an OS serial device. The zero value is not usable; construct
// one with Open.
//
// go.bug.st/serial exposes no OS-level dup(2) equivalent, so TryDuplicate
// returns a second Handle sharing the same underlying serial.Port rather
// than a true duplicated descriptor (see SPEC_FULL.md's Open Question
// decisions). The library's Port already tolerates one goroutine blocked
// in Read while another calls Write, which is what the reader/writer task
// split actually needs. The two Handles also share a closeState, so
// Worker.Close can call Close() on both the read and the write handle
// without double-closing the one underlying port.
type Handle struct {
	port   serial.Port
	closed *closeState
}

// closeState is shared by every Handle duplicated from the same Open call,
// so whichever of them closes first actually closes the port and the rest
// observe that same result instead of closing it again.
type closeState struct {
	once sync.Once
	err  error
}

// Open opens the device at path with the given baud rate and an 8-N-1
// frame, matching the defaults in spec §6.
func Open(path string, baudRate int) (*Handle, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	return &Handle{port: port, closed: &closeState{}}, nil
}

// TryDuplicate returns a second Handle over the same device.
func (h *Handle) TryDuplicate() (Device, error) {
	if h.port == nil {
		return nil, ErrNoHandle
	}
	return &Handle{port: h.port, closed: h.closed}, nil
}

// Read fills buf from the device. A read timeout is reported as (0, nil),
// never as an error.
func (h *Handle) Read(buf []byte) (int, error) {
	if h.port == nil {
		return 0, ErrNoHandle
	}
	n, err := h.port.Read(buf)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// WriteAll writes data to the device in full.
func (h *Handle) WriteAll(data []byte) error {
	if h.port == nil {
		return ErrNoHandle
	}
	for len(data) > 0 {
		n, err := h.port.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Close releases the device. Safe to call more than once, including from a
// duplicate Handle returned by TryDuplicate: only the first call actually
// closes the underlying port.
func (h *Handle) Close() error {
	if h.port == nil {
		return nil
	}
	h.closed.once.Do(func() {
		h.closed.err = h.port.Close()
	})
	return h.closed.err
}
