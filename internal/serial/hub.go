package serial

import (
	"fmt"
	"sort"
	"sync"
)

// Hub is the registry of named port workers (C4). It owns the single
// outbound event channel handed to every worker's reader task.
type Hub struct {
	mu      sync.RWMutex
	workers map[PortName]*Worker
	eventTx chan Event
}

// NewHub constructs an empty registry and its event consumer endpoint.
func NewHub() (*Hub, <-chan Event) {
	ch := make(chan Event, eventBufferSize)
	return &Hub{workers: make(map[PortName]*Worker), eventTx: ch}, ch
}

// Open spawns a worker for name, replacing any existing worker under that
// name (the old one is closed first).
func (h *Hub) Open(name PortName, cfg PortConfig) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.workers[name]; ok {
		delete(h.workers, name)
		existing.Close()
	}

	cfgCopy := cfg
	w, err := Spawn(name, &cfgCopy, h.eventTx)
	if err != nil {
		return err
	}
	h.workers[name] = w
	return nil
}

// Close removes and shuts down the named worker. Idempotent.
func (h *Hub) Close(name PortName) {
	h.mu.Lock()
	w, ok := h.workers[name]
	if ok {
		delete(h.workers, name)
	}
	h.mu.Unlock()

	if ok {
		w.Close()
	}
}

// CloseAll tears down every worker. Called on program shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	workers := h.workers
	h.workers = make(map[PortName]*Worker)
	h.mu.Unlock()

	for _, w := range workers {
		w.Close()
	}
}

// Send appends each target's configured line ending to payload and
// enqueues it in the given order. The first failure (PortNotFound or
// ErrBackpressure) is returned; later targets are still attempted.
func (h *Hub) Send(targets []PortName, payload []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var firstErr error
	for _, name := range targets {
		w, ok := h.workers[name]
		if !ok {
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %s", ErrPortNotFound, name)
			}
			continue
		}
		if err := w.TryEnqueue(payload); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", name, err)
		}
	}
	return firstErr
}

// PortInfo pairs a port name with its shared configuration, as returned by
// ListPorts.
type PortInfo struct {
	Name   PortName
	Config *PortConfig
}

// ListPorts returns all registered ports, ordered alphabetically by name
// so the UI can render a stable list.
func (h *Hub) ListPorts() []PortInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	infos := make([]PortInfo, 0, len(h.workers))
	for name, w := range h.workers {
		infos = append(infos, PortInfo{Name: name, Config: w.Config()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// GetConfig returns the shared configuration for name, if open.
func (h *Hub) GetConfig(name PortName) (*PortConfig, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w, ok := h.workers[name]
	if !ok {
		return nil, false
	}
	return w.Config(), true
}

// LoadConfig reads ports.toml and opens every port it names. A parse
// failure rejects the whole file; a per-port open failure is reported
// through notify and does not abort loading the rest.
func (h *Hub) LoadConfig(path string, notify func(name PortName, err error)) error {
	configs, err := LoadPortConfigs(path)
	if err != nil {
		return err
	}
	for name, cfg := range configs {
		if err := h.Open(name, cfg); err != nil {
			if notify != nil {
				notify(name, err)
			}
		}
	}
	return nil
}
