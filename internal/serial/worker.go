package serial

import (
	"sync"
	"time"
)

// writerQueueCapacity bounds how many pending writes a worker buffers
// before Hub.send reports backpressure (spec §4.3).
const writerQueueCapacity = 32

// readBufferSize is the scratch buffer size for a single Read call.
const readBufferSize = 1024

// eventBufferSize approximates spec §4.3's "unbounded per direction"
// outbound channel with a large bounded buffer; see Worker.emitData for
// the newest-wins drop policy applied only once this buffer is actually
// exhausted.
const eventBufferSize = 4096

// Worker is the reader+writer pair for one open port (C3). Its two tasks
// share duplicated handles of the same device and hold no lock against
// each other.
type Worker struct {
	name PortName
	cfg  *PortConfig

	writeCh chan []byte
	stopCh  chan struct{}
	wg      sync.WaitGroup

	readHandle  Device
	writeHandle Device

	closeOnce sync.Once
}

// Spawn opens the device and starts the reader and writer tasks, emitting
// Data and Notification events onto eventTx (spec §4.3).
func Spawn(name PortName, cfg *PortConfig, eventTx chan Event) (*Worker, error) {
	readHandle, err := Open(cfg.Path, cfg.BaudRate)
	if err != nil {
		return nil, err
	}
	writeHandle, err := readHandle.TryDuplicate()
	if err != nil {
		readHandle.Close()
		return nil, err
	}

	return newWorker(name, cfg, eventTx, readHandle, writeHandle), nil
}

// newWorker starts the reader/writer tasks over already-opened devices.
// Split out from Spawn so tests can supply fake Devices.
func newWorker(name PortName, cfg *PortConfig, eventTx chan Event, readHandle, writeHandle Device) *Worker {
	w := &Worker{
		name:        name,
		cfg:         cfg,
		writeCh:     make(chan []byte, writerQueueCapacity),
		stopCh:      make(chan struct{}),
		readHandle:  readHandle,
		writeHandle: writeHandle,
	}

	w.wg.Add(2)
	go w.readLoop(eventTx)
	go w.writeLoop(eventTx)

	return w
}

// Config returns the worker's immutable, shared port configuration.
func (w *Worker) Config() *PortConfig { return w.cfg }

// Name returns the worker's port name.
func (w *Worker) Name() PortName { return w.name }

// TryEnqueue appends the port's line ending to payload and attempts a
// non-blocking enqueue onto the writer queue. Returns ErrBackpressure if
// the queue is full.
func (w *Worker) TryEnqueue(payload []byte) error {
	buf := make([]byte, 0, len(payload)+2)
	buf = append(buf, payload...)
	buf = append(buf, w.cfg.LineEnding.Bytes()...)

	select {
	case w.writeCh <- buf:
		return nil
	default:
		return ErrBackpressure
	}
}

// Close stops both tasks and releases the device. Idempotent; blocks
// until both tasks have exited, which the read timeout bounds (spec §5).
func (w *Worker) Close() {
	w.closeOnce.Do(func() {
		close(w.stopCh)
		close(w.writeCh)
		w.readHandle.Close()
		w.writeHandle.Close()
	})
	w.wg.Wait()
}

func (w *Worker) readLoop(eventTx chan Event) {
	defer w.wg.Done()

	buf := make([]byte, readBufferSize)
	for {
		select {
		case <-w.stopCh:
			return
		default:
		}

		n, err := w.readHandle.Read(buf)
		if err != nil {
			w.emitNotification(eventTx, LevelError, "read error: "+err.Error())
			return
		}
		if n == 0 {
			continue // timeout, not an error
		}

		data := make([]byte, n)
		copy(data, buf[:n])
		w.emitData(eventTx, data, time.Now())
	}
}

func (w *Worker) writeLoop(eventTx chan Event) {
	defer w.wg.Done()

	for {
		select {
		case buf, ok := <-w.writeCh:
			if !ok {
				return
			}
			if err := w.writeHandle.WriteAll(buf); err != nil {
				w.emitNotification(eventTx, LevelError, "write error: "+err.Error())
				return
			}
		case <-w.stopCh:
			return
		}
	}
}

// emitData sends a Data event, applying a newest-wins drop when the
// outbound buffer is momentarily exhausted (spec §4.3).
func (w *Worker) emitData(eventTx chan Event, data []byte, ts time.Time) {
	ev := DataEvent(w.name, data, ts)
	select {
	case eventTx <- ev:
		return
	case <-w.stopCh:
		return
	default:
	}
	// Buffer full: drop the oldest queued event and insert this one. If the
	// oldest is a Notification it is re-queued and this Data event is
	// dropped instead.
	select {
	case old := <-eventTx:
		if old.Kind == EventNotification {
			select {
			case eventTx <- old:
			case <-w.stopCh:
			}
			return
		}
	default:
	}
	select {
	case eventTx <- ev:
	default:
	}
}

// emitNotification always delivers — Notifications are never dropped.
func (w *Worker) emitNotification(eventTx chan Event, level NotifyLevel, msg string) {
	ev := NotificationEvent(w.name, level, msg)
	select {
	case eventTx <- ev:
	case <-w.stopCh:
	}
}
