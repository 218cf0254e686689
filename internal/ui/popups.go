package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"

	"github.com/kesler-labs/seriscope/internal/inputline"
	"github.com/kesler-labs/seriscope/internal/serial"
)

// notificationTTL is how long the timed notification overlay stays
// visible before it's cleared automatically.
const notificationTTL = 3 * time.Second

// listPopup is the shared shape for the read-only port-list popup and the
// togglable send-group popup: a cursor over the alphabetically-ordered
// port list (spec §6: "j/k/↑/↓ navigate").
type listPopup struct {
	visible bool
	cursor  int
}

func (p *listPopup) show()   { p.visible = true; p.cursor = 0 }
func (p *listPopup) close()  { p.visible = false }
func (p *listPopup) up()     { p.cursor = max(0, p.cursor-1) }
func (p *listPopup) down(n int) {
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = min(n-1, p.cursor+1)
}

// notification is the timed, non-modal overlay (spec §3: exactly one
// popup may be modal; notification never captures input).
type notification struct {
	message   string
	expiresAt time.Time
}

func (n *notification) show(msg string) {
	n.message = msg
	n.expiresAt = time.Now().Add(notificationTTL)
}

func (n *notification) active() bool {
	return n.message != "" && time.Now().Before(n.expiresAt)
}

// popups bundles every overlay the UI Controller owns. At most one of
// portList/sendGroup/help is ever visible (enforced by how Update opens
// them); notification is independent.
type popups struct {
	portList   listPopup
	sendGroup  listPopup
	help       bool
	helpModel  help.Model
	notify     notification
}

func newPopups(keys KeyMap) popups {
	h := help.New()
	return popups{helpModel: h}
}

// anyModal reports whether a popup currently claims all key input (spec
// §4.8 routing tier 1).
func (p *popups) anyModal() bool {
	return p.portList.visible || p.sendGroup.visible || p.help
}

func (p *popups) closeAll() {
	p.portList.close()
	p.sendGroup.close()
	p.help = false
}

// toggleSendGroupTarget is a thin bridge so the send-group popup can toggle
// entries in the InputLine's persistent target set.
func toggleSendGroupTarget(targets *inputline.TargetSet, ports []serial.PortInfo, cursor int) {
	if cursor < 0 || cursor >= len(ports) {
		return
	}
	targets.Toggle(ports[cursor].Name)
}
