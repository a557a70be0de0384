package logs_receiving

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	logs_core "syslogbull/internal/features/logs/core"
	"syslogbull/internal/util/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTestLine = "<34>1 2024-03-05T10:00:00Z host-a app - c - hello"

type slowWriter struct {
	delay     time.Duration
	started   chan struct{}
	startOnce sync.Once

	mu      sync.Mutex
	records []logs_core.LogRecord
}

func newSlowWriter(delay time.Duration) *slowWriter {
	return &slowWriter{delay: delay, started: make(chan struct{})}
}

func (w *slowWriter) WriteLog(ctx context.Context, record logs_core.LogRecord) error {
	w.startOnce.Do(func() { close(w.started) })

	select {
	case <-time.After(w.delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.records = append(w.records, record)
	return nil
}

func (w *slowWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.records)
}

func startSupervisor(t *testing.T, writer LogWriter) (*ListenerSupervisor, context.CancelFunc, chan error) {
	t.Helper()

	supervisor := NewListenerSupervisor("127.0.0.1:0", writer, logger.GetLogger())
	require.NoError(t, supervisor.Bind())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- supervisor.Run(ctx)
	}()

	t.Cleanup(cancel)

	return supervisor, cancel, done
}

func waitForRun(t *testing.T, done chan error) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
		return nil
	}
}

func Test_Run_TCPListenerLost_UDPKeepsServingAndRunReportsTCPFailure(t *testing.T) {
	writer := newSlowWriter(0)
	supervisor, cancel, done := startSupervisor(t, writer)

	require.NoError(t, supervisor.tcpListener.Close())

	conn, err := net.Dial("udp", supervisor.UDPAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(validTestLine))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return writer.Count() == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	err = waitForRun(t, done)

	var transportFailure *TransportFailure
	require.True(t, errors.As(err, &transportFailure), "unexpected error: %v", err)
	assert.Equal(t, TransportTCP, transportFailure.Transport)
	assert.True(t, errors.Is(err, net.ErrClosed))
}

func Test_Run_CancelDuringWrite_InFlightWriteCompletes(t *testing.T) {
	writer := newSlowWriter(300 * time.Millisecond)
	supervisor, cancel, done := startSupervisor(t, writer)

	conn, err := net.Dial("tcp", supervisor.TCPAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = fmt.Fprintf(conn, "%s\n", validTestLine)
	require.NoError(t, err)

	select {
	case <-writer.started:
	case <-time.After(5 * time.Second):
		t.Fatal("write never started")
	}

	cancel()

	assert.NoError(t, waitForRun(t, done))
	assert.Equal(t, 1, writer.Count())
}

type failingPacketConn struct {
	mu       sync.Mutex
	errs     []error
	reads    int
	fallback error
}

func (c *failingPacketConn) ReadFrom(_ []byte) (int, net.Addr, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reads++
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		return 0, nil, err
	}

	return 0, nil, c.fallback
}

func (c *failingPacketConn) WriteTo(p []byte, _ net.Addr) (int, error) { return len(p), nil }
func (c *failingPacketConn) Close() error                              { return nil }
func (c *failingPacketConn) LocalAddr() net.Addr                       { return &net.UDPAddr{} }
func (c *failingPacketConn) SetDeadline(_ time.Time) error             { return nil }
func (c *failingPacketConn) SetReadDeadline(_ time.Time) error         { return nil }
func (c *failingPacketConn) SetWriteDeadline(_ time.Time) error        { return nil }

func newTestDatagramHandler() *DatagramHandler {
	handler := NewDatagramHandler(NewMessageProcessor(newSlowWriter(0), logger.GetLogger()), logger.GetLogger())
	handler.sleep = func(time.Duration) {}

	return handler
}

func Test_Serve_PersistentReceiveErrors_ReturnsAfterLimit(t *testing.T) {
	receiveErr := errors.New("network is down")
	conn := &failingPacketConn{fallback: receiveErr}

	err := newTestDatagramHandler().Serve(conn)

	require.Error(t, err)
	assert.True(t, errors.Is(err, receiveErr))
	assert.Equal(t, maxConsecutiveReceiveErrors, conn.reads)
}

func Test_Serve_FewTransientErrorsThenClosed_ReturnsErrClosed(t *testing.T) {
	transient := errors.New("temporary failure")
	errs := make([]error, maxConsecutiveReceiveErrors-1)
	for i := range errs {
		errs[i] = transient
	}
	conn := &failingPacketConn{errs: errs, fallback: net.ErrClosed}

	err := newTestDatagramHandler().Serve(conn)

	assert.True(t, errors.Is(err, net.ErrClosed))
	assert.Equal(t, maxConsecutiveReceiveErrors, conn.reads)
}
