package logs_receiving_tests

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	logs_core "syslogbull/internal/features/logs/core"
	logs_receiving "syslogbull/internal/features/logs/receiving"
	"syslogbull/internal/util/logger"

	"github.com/stretchr/testify/require"
)

const eventuallyTimeout = 5 * time.Second

type FakeLogWriter struct {
	mu      sync.Mutex
	records []logs_core.LogRecord
	failFor map[string]bool
}

func NewFakeLogWriter() *FakeLogWriter {
	return &FakeLogWriter{failFor: make(map[string]bool)}
}

func (w *FakeLogWriter) WriteLog(_ context.Context, record logs_core.LogRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.failFor[record.Hostname] {
		return &logs_core.StorageError{Record: record, Err: errors.New("storage unavailable")}
	}

	w.records = append(w.records, record)
	return nil
}

func (w *FakeLogWriter) FailForHostname(hostname string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.failFor[hostname] = true
}

func (w *FakeLogWriter) Records() []logs_core.LogRecord {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]logs_core.LogRecord(nil), w.records...)
}

func (w *FakeLogWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.records)
}

type RunningSupervisor struct {
	Supervisor *logs_receiving.ListenerSupervisor
	cancel     context.CancelFunc
	done       chan error
}

// StartTestSupervisor binds an ephemeral port on loopback and serves until
// Stop or test cleanup.
func StartTestSupervisor(t *testing.T, writer logs_receiving.LogWriter) *RunningSupervisor {
	t.Helper()

	supervisor := logs_receiving.NewListenerSupervisor("127.0.0.1:0", writer, logger.GetLogger())
	require.NoError(t, supervisor.Bind())

	ctx, cancel := context.WithCancel(context.Background())
	running := &RunningSupervisor{
		Supervisor: supervisor,
		cancel:     cancel,
		done:       make(chan error, 1),
	}

	go func() {
		running.done <- supervisor.Run(ctx)
	}()

	t.Cleanup(func() {
		_ = running.Stop(eventuallyTimeout)
	})

	return running
}

// Stop cancels the supervisor and waits for Run to return.
func (r *RunningSupervisor) Stop(timeout time.Duration) error {
	r.cancel()

	select {
	case err, ok := <-r.done:
		if !ok {
			return nil
		}
		close(r.done)
		return err
	case <-time.After(timeout):
		return fmt.Errorf("supervisor did not stop within %s", timeout)
	}
}

func DialTCP(t *testing.T, running *RunningSupervisor) net.Conn {
	t.Helper()

	conn, err := net.Dial("tcp", running.Supervisor.TCPAddr().String())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func DialUDP(t *testing.T, running *RunningSupervisor) net.Conn {
	t.Helper()

	conn, err := net.Dial("udp", running.Supervisor.UDPAddr().String())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func ValidSyslogLine(hostname, logLevel, message string) string {
	return fmt.Sprintf("<34>1 2024-03-05T10:00:00Z %s %s - content - %s", hostname, logLevel, message)
}
