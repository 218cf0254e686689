package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, lineEnding LineEnding) *PortConfig {
	t.Helper()
	return &PortConfig{Path: "/fake", BaudRate: 115200, LineEnding: lineEnding, Color: DefaultColor}
}

func TestWorkerEmitsDataEvents(t *testing.T) {
	dev := newFakeDevice()
	eventTx := make(chan Event, 8)
	w := newWorker("A", testConfig(t, LF), eventTx, dev, dev)
	defer w.Close()

	dev.deliver([]byte("hello"))

	select {
	case ev := <-eventTx:
		require.Equal(t, EventData, ev.Kind)
		assert.Equal(t, PortName("A"), ev.Port)
		assert.Equal(t, []byte("hello"), ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for data event")
	}
}

func TestWorkerTryEnqueueAppendsLineEnding(t *testing.T) {
	dev := newFakeDevice()
	eventTx := make(chan Event, 8)
	w := newWorker("B", testConfig(t, CRLF), eventTx, dev, dev)
	defer w.Close()

	require.NoError(t, w.TryEnqueue([]byte("on")))

	require.Eventually(t, func() bool {
		return len(dev.writtenPayloads()) == 1
	}, time.Second, time.Millisecond)

	assert.Equal(t, []byte("on\r\n"), dev.writtenPayloads()[0])
}

func TestWorkerTryEnqueueBackpressure(t *testing.T) {
	dev := newFakeDevice()
	dev.mu.Lock()
	dev.writeErr = nil // writer runs fine, but we flood the queue before it can drain
	dev.mu.Unlock()

	eventTx := make(chan Event, 8)
	w := newWorker("C", testConfig(t, LF), eventTx, dev, dev)
	defer w.Close()

	var err error
	for i := 0; i < writerQueueCapacity+8; i++ {
		if e := w.TryEnqueue([]byte("x")); e != nil {
			err = e
			break
		}
	}
	assert.ErrorIs(t, err, ErrBackpressure)
}

func TestWorkerReadErrorEmitsNotificationAndStops(t *testing.T) {
	dev := newFakeDevice()
	dev.mu.Lock()
	dev.readErr = errTest
	dev.mu.Unlock()

	eventTx := make(chan Event, 8)
	w := newWorker("D", testConfig(t, LF), eventTx, dev, dev)
	defer w.Close()

	select {
	case ev := <-eventTx:
		require.Equal(t, EventNotification, ev.Kind)
		assert.Equal(t, LevelError, ev.Level)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestWorkerCloseStopsBothTasks(t *testing.T) {
	dev := newFakeDevice()
	eventTx := make(chan Event, 8)
	w := newWorker("E", testConfig(t, LF), eventTx, dev, dev)

	done := make(chan struct{})
	go func() {
		w.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return promptly")
	}
}

type testErr string

func (e testErr) Error() string { return string(e) }

var errTest = testErr("simulated I/O error")
