package inputline

import (
	"sort"

	"github.com/kesler-labs/seriscope/internal/serial"
)

// TargetSet is the subset of ports the next Send will reach. It persists
// across send-group popup open/close (spec §3).
type TargetSet struct {
	members map[serial.PortName]struct{}
}

// NewTargetSet returns an empty target set.
func NewTargetSet() TargetSet {
	return TargetSet{members: make(map[serial.PortName]struct{})}
}

// Toggle flips membership for name — the send-group popup's Space/Enter
// action (spec §6: "send-group toggles membership").
func (t *TargetSet) Toggle(name serial.PortName) {
	if _, ok := t.members[name]; ok {
		delete(t.members, name)
		return
	}
	t.members[name] = struct{}{}
}

// Contains reports whether name is currently a target.
func (t *TargetSet) Contains(name serial.PortName) bool {
	_, ok := t.members[name]
	return ok
}

// Sorted returns the selected ports in alphabetical order, the order
// Hub.send expects (spec §8: enqueue order == target order).
func (t *TargetSet) Sorted() []serial.PortName {
	out := make([]serial.PortName, 0, len(t.members))
	for name := range t.members {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Empty reports whether no ports are selected.
func (t *TargetSet) Empty() bool { return len(t.members) == 0 }
