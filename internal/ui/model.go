// Package ui is the UI Controller (C8): it owns focus, routes key events,
// drains the Hub's outbound event channel into the display buffer and the
// logger, and renders the ConfigBar/Display/InputBar layout plus popups.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kesler-labs/seriscope/internal/display"
	"github.com/kesler-labs/seriscope/internal/inputline"
	"github.com/kesler-labs/seriscope/internal/serial"
)

// tickInterval caps the render/input-poll loop at ~60 fps (spec §4.8).
const tickInterval = 16 * time.Millisecond

// drainBudget bounds how many events are pulled off a channel per tick,
// so a flooded port cannot starve the render loop even though the channel
// is drained "eagerly" (spec §4.3/§4.8).
const drainBudget = 512

// discoveryInterval is how often the port-list popup's device-presence
// annotations are refreshed. Enumerating serial devices touches the OS,
// so it runs far less often than the render tick.
const discoveryInterval = 2 * time.Second

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// discoveryMsg carries the result of the periodic device scan (spec:
// "device present"/"device missing" annotations on the port-list popup).
// ok is false when the scan errored, in which case the previous devices
// list is kept rather than replaced with an empty one.
type discoveryMsg struct {
	devices []serial.DeviceInfo
	ok      bool
}

func discoveryTick() tea.Cmd {
	return tea.Tick(discoveryInterval, func(time.Time) tea.Msg {
		devices, err := serial.Discover()
		return discoveryMsg{devices: devices, ok: err == nil}
	})
}

// Model is the bubbletea program's root model.
type Model struct {
	hub        *serial.Hub
	hubEvents  <-chan serial.Event
	logStore   dataLogger
	logNotify  <-chan serial.Event
	configPath string

	display *display.Buffer
	input   *inputline.Line
	devices []serial.DeviceInfo

	focus  Focus
	keys   KeyMap
	styles Styles
	popups popups

	width, height int

	quitting bool
}

// dataLogger is the subset of *logstore.Store the UI Controller needs,
// kept as an interface so tests can supply a no-op double without writing
// to disk.
type dataLogger interface {
	LogData(ev serial.Event)
	Purge()
}

// New constructs the UI Controller over an already-populated Hub.
func New(hub *serial.Hub, hubEvents <-chan serial.Event, logStore dataLogger, logNotify <-chan serial.Event, configPath string) *Model {
	keys := DefaultKeyMap()
	return &Model{
		hub:        hub,
		hubEvents:  hubEvents,
		logStore:   logStore,
		logNotify:  logNotify,
		configPath: configPath,
		display:    display.New(),
		input:      inputline.New(),
		focus:      FocusInputBar,
		keys:       keys,
		styles:     DefaultStyles(),
		popups:     newPopups(keys),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.input.Focus(), discoveryTick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		m.drainEvents()
		if m.quitting {
			return m, tea.Quit
		}
		return m, tick()

	case discoveryMsg:
		if msg.ok {
			m.devices = msg.devices
		}
		return m, discoveryTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// drainEvents implements spec §4.8 step 1: non-blocking drain of the Hub
// channel (pushing Data into the display and logger, Notification into
// the overlay) and of the logger's own notification channel.
func (m *Model) drainEvents() {
hubDrain:
	for i := 0; i < drainBudget; i++ {
		select {
		case ev, ok := <-m.hubEvents:
			if !ok {
				break hubDrain
			}
			m.handleHubEvent(ev)
		default:
			break hubDrain
		}
	}
logDrain:
	for i := 0; i < drainBudget; i++ {
		select {
		case ev, ok := <-m.logNotify:
			if !ok {
				break logDrain
			}
			m.popups.notify.show(ev.Message)
		default:
			break logDrain
		}
	}
}

func (m *Model) handleHubEvent(ev serial.Event) {
	switch ev.Kind {
	case serial.EventData:
		m.display.PushLine(m.dataLine(ev))
		if m.logStore != nil {
			m.logStore.LogData(ev)
		}
	case serial.EventNotification:
		m.popups.notify.show(ev.Message)
	}
}

// dataLine builds the three-span styled line spec §4.8 specifies:
// "[HH:MM:SS.mmm] " (default), "[<port>]" (port color), " <text>"
// (default).
func (m *Model) dataLine(ev serial.Event) display.Line {
	ts := ev.Timestamp.Format("15:04:05.000")
	text := ev.Text()

	portStyle := display.LineStyle{}
	if cfg, ok := m.hub.GetConfig(ev.Port); ok {
		portStyle.Foreground = cfg.Color.ANSICode()
	}

	return display.NewLine(
		display.Span{Text: fmt.Sprintf("[%s] ", ts)},
		display.Span{Text: fmt.Sprintf("[%s]", ev.Port), Style: portStyle},
		display.Span{Text: " " + text},
	)
}

func (m *Model) contentHeight() int {
	// ConfigBar and InputBar each cost 3 rows (1 content line + 2 border
	// rows); the Display box itself costs 2 border rows plus its own
	// title row on top of the content rows this returns.
	const chrome = 3 + 3 + 2 + 1
	h := m.height - chrome
	if h < 1 {
		return 1
	}
	return h
}
