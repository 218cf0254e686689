package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kesler-labs/seriscope/internal/display"
	"github.com/kesler-labs/seriscope/internal/serial"
)

type fakeLogger struct {
	purged   int
	logged   []serial.Event
}

func (f *fakeLogger) LogData(ev serial.Event) { f.logged = append(f.logged, ev) }
func (f *fakeLogger) Purge()                  { f.purged++ }

func newTestModel(t *testing.T) (*Model, *fakeLogger) {
	t.Helper()
	hub, hubEvents := serial.NewHub()
	t.Cleanup(hub.CloseAll)

	logger := &fakeLogger{}
	logNotify := make(chan serial.Event, 4)
	m := New(hub, hubEvents, logger, logNotify, "config/ports.toml")
	m.width, m.height = 80, 24
	return m, logger
}

func TestDispatchSendLocalClearCommand(t *testing.T) {
	m, _ := newTestModel(t)
	m.display.PushLine(display.NewLine(display.Span{Text: "hello"}))
	require.Equal(t, 1, m.display.Len())

	m.dispatchSend("/clear")
	assert.Equal(t, 0, m.display.Len())
}

func TestDispatchSendLocalHelpCommandTogglesPopup(t *testing.T) {
	m, _ := newTestModel(t)
	assert.False(t, m.popups.help)
	m.dispatchSend("/help")
	assert.True(t, m.popups.help)
	m.dispatchSend("/help")
	assert.False(t, m.popups.help)
}

func TestDispatchSendLocalPurgeCommandDoesNotForwardToHub(t *testing.T) {
	m, logger := newTestModel(t)
	m.dispatchSend("/purge")
	assert.Equal(t, 1, logger.purged)
}

func TestDispatchSendWithNoTargetsShowsNotification(t *testing.T) {
	m, _ := newTestModel(t)
	m.dispatchSend("hello")
	assert.Contains(t, m.popups.notify.message, "No ports selected")
}

func TestDispatchSendToUnknownPortShowsSendFailedNotification(t *testing.T) {
	m, _ := newTestModel(t)
	m.input.Targets().Toggle("ghost")
	m.dispatchSend("hello")
	assert.Contains(t, m.popups.notify.message, "Send failed")
}

func TestContentHeightLeavesRoomForConfigBarAndInputBarChrome(t *testing.T) {
	m, _ := newTestModel(t)
	m.height = 30

	// ConfigBar (3 rows) + InputBar (3 rows) + Display's own border (2
	// rows) + title row (1 row) must all fit alongside contentHeight()
	// content rows within m.height.
	assert.Equal(t, 21, m.contentHeight())
}

func TestUpdateDiscoveryMsgStoresDevicesAndReschedules(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Empty(t, m.devices)

	devices := []serial.DeviceInfo{{Path: "/dev/ttyUSB0", IsUSB: true}}
	updated, cmd := m.Update(discoveryMsg{devices: devices, ok: true})

	mm := updated.(*Model)
	assert.Equal(t, devices, mm.devices)
	assert.NotNil(t, cmd, "must reschedule the next discovery tick")
}

func TestUpdateDiscoveryMsgKeepsStaleDevicesOnScanError(t *testing.T) {
	m, _ := newTestModel(t)
	devices := []serial.DeviceInfo{{Path: "/dev/ttyUSB0", IsUSB: true}}
	m.devices = devices

	updated, cmd := m.Update(discoveryMsg{devices: nil, ok: false})

	mm := updated.(*Model)
	assert.Equal(t, devices, mm.devices, "a failed scan must not blank out the last known devices")
	assert.NotNil(t, cmd, "must still reschedule the next discovery tick")
}
