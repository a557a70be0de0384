package logs_receiving

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ListenerSupervisor owns the TCP listener and the UDP socket bound to the
// same address. Run serves both until the context is cancelled, then waits
// for in-flight connection handlers before returning.
type ListenerSupervisor struct {
	address    string
	tcpHandler *ConnectionHandler
	udpHandler *DatagramHandler
	logger     *slog.Logger

	tcpListener net.Listener
	udpConn     net.PacketConn

	mu             sync.Mutex
	conns          map[net.Conn]struct{}
	isShuttingDown bool
	handlersWg     sync.WaitGroup
}

func NewListenerSupervisor(address string, writer LogWriter, logger *slog.Logger) *ListenerSupervisor {
	processor := NewMessageProcessor(writer, logger)

	return &ListenerSupervisor{
		address:    address,
		tcpHandler: NewConnectionHandler(processor, logger),
		udpHandler: NewDatagramHandler(processor, logger),
		logger:     logger,
		conns:      make(map[net.Conn]struct{}),
	}
}

// Bind acquires both sockets. TCP is bound first, when the configured port
// is 0 the UDP socket reuses the port the kernel picked for TCP.
func (s *ListenerSupervisor) Bind() error {
	host, port, err := net.SplitHostPort(s.address)
	if err != nil {
		return &BindFailure{Transport: TransportTCP, Address: s.address, Err: err}
	}

	tcpListener, err := net.Listen("tcp", s.address)
	if err != nil {
		return &BindFailure{Transport: TransportTCP, Address: s.address, Err: err}
	}

	udpAddress := s.address
	if port == "0" {
		if tcpAddr, ok := tcpListener.Addr().(*net.TCPAddr); ok {
			udpAddress = net.JoinHostPort(host, fmt.Sprint(tcpAddr.Port))
		}
	}

	udpConn, err := net.ListenPacket("udp", udpAddress)
	if err != nil {
		_ = tcpListener.Close()
		return &BindFailure{Transport: TransportUDP, Address: udpAddress, Err: err}
	}

	s.tcpListener = tcpListener
	s.udpConn = udpConn

	s.logger.Info("Syslog listeners bound",
		slog.String("tcp", tcpListener.Addr().String()),
		slog.String("udp", udpConn.LocalAddr().String()))

	return nil
}

func (s *ListenerSupervisor) TCPAddr() net.Addr {
	if s.tcpListener == nil {
		return nil
	}

	return s.tcpListener.Addr()
}

func (s *ListenerSupervisor) UDPAddr() net.Addr {
	if s.udpConn == nil {
		return nil
	}

	return s.udpConn.LocalAddr()
}

// Run blocks until ctx is cancelled and every connection handler has
// returned. A fatal error on one transport leaves the other one serving,
// the first such error is returned after shutdown.
func (s *ListenerSupervisor) Run(ctx context.Context) error {
	if s.tcpListener == nil || s.udpConn == nil {
		return errors.New("listeners are not bound")
	}

	stop := context.AfterFunc(ctx, s.shutdown)
	defer stop()

	var g errgroup.Group

	g.Go(s.acceptLoop)
	g.Go(s.receiveLoop)

	err := g.Wait()

	s.shutdown()
	s.handlersWg.Wait()

	s.logger.Info("Syslog listeners stopped")

	return err
}

func (s *ListenerSupervisor) acceptLoop() error {
	backoff := newRetryBackoff()

	for {
		conn, err := s.tcpListener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				if s.isShutdownRequested() {
					return nil
				}

				return s.transportFailed(TransportTCP, err)
			}

			delay := backoff.next()
			s.logger.Warn("failed to accept TCP connection",
				slog.String("error", err.Error()),
				slog.Duration("retryIn", delay))
			time.Sleep(delay)
			continue
		}

		backoff.reset()

		if !s.trackConnection(conn) {
			_ = conn.Close()
			continue
		}

		go func() {
			defer s.handlersWg.Done()
			defer s.untrackConnection(conn)

			s.tcpHandler.Handle(conn)
		}()
	}
}

func (s *ListenerSupervisor) receiveLoop() error {
	err := s.udpHandler.Serve(s.udpConn)
	if s.isShutdownRequested() {
		return nil
	}

	return s.transportFailed(TransportUDP, err)
}

func (s *ListenerSupervisor) transportFailed(transport Transport, err error) error {
	transportFailuresTotal.WithLabelValues(string(transport)).Inc()

	s.logger.Error("syslog transport stopped unexpectedly",
		slog.String("transport", string(transport)),
		slog.String("error", err.Error()))

	return &TransportFailure{Transport: transport, Err: err}
}

// trackConnection registers conn under the same lock shutdown takes, so no
// handler can start after shutdown began waiting.
func (s *ListenerSupervisor) trackConnection(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isShuttingDown {
		return false
	}

	s.conns[conn] = struct{}{}
	s.handlersWg.Add(1)

	return true
}

func (s *ListenerSupervisor) untrackConnection(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conns, conn)
}

func (s *ListenerSupervisor) isShutdownRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isShuttingDown
}

func (s *ListenerSupervisor) shutdown() {
	s.mu.Lock()
	if s.isShuttingDown {
		s.mu.Unlock()
		return
	}

	s.isShuttingDown = true

	// Pending reads return immediately, bytes already read are still processed.
	for conn := range s.conns {
		_ = conn.SetReadDeadline(time.Now())
	}
	s.mu.Unlock()

	s.logger.Info("Stopping syslog listeners", slog.Int("openConnections", s.openConnections()))

	_ = s.tcpListener.Close()
	_ = s.udpConn.Close()
}

func (s *ListenerSupervisor) openConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.conns)
}
