// Package logstore is the per-port and combined "super" data logger (C5).
// It mirrors the buffered-writer-per-file design of the original Rust
// logger task, translated into a single goroutine draining a command
// channel instead of an async task draining an mpsc receiver.
package logstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kesler-labs/seriscope/internal/applog"
	"github.com/kesler-labs/seriscope/internal/serial"
)

const notifyBufferSize = 16

// portLog bundles a log file with its buffered writer so Purge can
// truncate and rewind in one place.
type portLog struct {
	file   *os.File
	writer *bufio.Writer
}

// Store consumes Data and Purge commands and writes to logs/<port>.log and
// logs/super.log. Construction never fails: if the logs directory or
// super.log cannot be opened, the store disables itself and reports one
// notification instead of aborting startup.
type Store struct {
	dir string

	disabled bool
	super    *portLog
	ports    map[serial.PortName]*portLog

	cmdCh    chan command
	notifyTx chan serial.Event
	stopCh   chan struct{}
	wg       sync.WaitGroup
	submitMu sync.RWMutex // held by submit; Close takes it to close cmdCh

	closeOnce sync.Once
}

type commandKind int

const (
	cmdData commandKind = iota
	cmdPurge
)

type command struct {
	kind commandKind
	port serial.PortName
	data []byte
	ts   time.Time
}

// New creates the logs/ directory, opens super.log, and starts the
// consumer goroutine. The returned channel carries purge/failure
// notifications the UI should surface the same way it surfaces Hub
// notifications.
func New(dir string) (*Store, <-chan serial.Event) {
	notifyTx := make(chan serial.Event, notifyBufferSize)
	s := &Store{
		dir:      dir,
		ports:    make(map[serial.PortName]*portLog),
		cmdCh:    make(chan command, 1024),
		notifyTx: notifyTx,
		stopCh:   make(chan struct{}),
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.disable("failed to create log directory: " + err.Error())
	} else if super, err := openPortLog(filepath.Join(dir, "super.log")); err != nil {
		s.disable("failed to open super.log: " + err.Error())
	} else {
		s.super = super
	}

	s.wg.Add(1)
	go s.run()
	return s, notifyTx
}

func openPortLog(path string) (*portLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &portLog{file: f, writer: bufio.NewWriter(f)}, nil
}

func (s *Store) disable(reason string) {
	s.disabled = true
	applog.Error("logstore: logging disabled", "reason", reason)
	s.notify(serial.LevelError, "Logging disabled: "+reason)
}

func (s *Store) notify(level serial.NotifyLevel, msg string) {
	select {
	case s.notifyTx <- serial.NotificationEvent("", level, msg):
	default:
	}
}

// LogData submits a data event for writing. Safe to call after Close is in
// progress; it is a no-op once the store has stopped.
func (s *Store) LogData(ev serial.Event) {
	s.submit(command{kind: cmdData, port: ev.Port, data: ev.Payload, ts: ev.Timestamp})
}

// Purge truncates every open log file to zero length.
func (s *Store) Purge() {
	s.submit(command{kind: cmdPurge})
}

func (s *Store) submit(cmd command) {
	s.submitMu.RLock()
	defer s.submitMu.RUnlock()
	select {
	case <-s.stopCh:
		return
	default:
	}
	s.cmdCh <- cmd
}

// Close stops the consumer goroutine and flushes/closes every open file.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.submitMu.Lock()
		close(s.stopCh)
		close(s.cmdCh)
		s.submitMu.Unlock()
	})
	s.wg.Wait()
}

func (s *Store) run() {
	defer s.wg.Done()
	for cmd := range s.cmdCh {
		if s.disabled {
			continue
		}
		switch cmd.kind {
		case cmdData:
			s.writeData(cmd)
		case cmdPurge:
			s.purge()
		}
	}
	s.closeFiles()
}

func (s *Store) writeData(cmd command) {
	ts := cmd.ts.Format("15:04:05.000")
	text := serial.Event{Payload: cmd.data}.Text()

	pl, err := s.portLogFor(cmd.port)
	if err == nil {
		fmt.Fprintf(pl.writer, "[%s] %s\n", ts, text)
		pl.writer.Flush()
	}

	if s.super != nil {
		fmt.Fprintf(s.super.writer, "[%s] [%s] %s\n", ts, cmd.port, text)
		s.super.writer.Flush()
	}
}

func (s *Store) portLogFor(port serial.PortName) (*portLog, error) {
	if pl, ok := s.ports[port]; ok {
		return pl, nil
	}
	pl, err := openPortLog(filepath.Join(s.dir, string(port)+".log"))
	if err != nil {
		applog.Error("logstore: failed to open port log", "port", port, "error", err)
		return nil, err
	}
	s.ports[port] = pl
	return pl, nil
}

func (s *Store) purge() {
	if s.super != nil {
		truncate(s.super)
	}
	for _, pl := range s.ports {
		truncate(pl)
	}
	s.notify(serial.LevelInfo, "Logs purged.")
}

func truncate(pl *portLog) {
	pl.writer.Flush()
	_ = pl.file.Truncate(0)
	_, _ = pl.file.Seek(0, 0)
	pl.writer.Reset(pl.file)
}

func (s *Store) closeFiles() {
	if s.super != nil {
		s.super.writer.Flush()
		s.super.file.Close()
	}
	for _, pl := range s.ports {
		pl.writer.Flush()
		pl.file.Close()
	}
}
