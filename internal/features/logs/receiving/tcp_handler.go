package logs_receiving

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
)

const tcpReadChunkSize = 4096

// ConnectionHandler reads one TCP connection until the peer closes it, a
// read fails, or shutdown interrupts the read. Messages are processed in
// the order they were received on the connection.
type ConnectionHandler struct {
	processor    *MessageProcessor
	logger       *slog.Logger
	maxFrameSize int
}

func NewConnectionHandler(processor *MessageProcessor, logger *slog.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		processor:    processor,
		logger:       logger,
		maxFrameSize: defaultMaxFrameSize,
	}
}

func (h *ConnectionHandler) Handle(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	activeConnections.Inc()
	defer activeConnections.Dec()

	remote := conn.RemoteAddr().String()
	framer := NewFramer(h.maxFrameSize)
	chunk := make([]byte, tcpReadChunkSize)

	h.logger.Debug("TCP connection opened", slog.String("remote", remote))

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			for _, frame := range framer.Push(chunk[:n]) {
				h.processor.Process(TransportTCP, frame)
			}
		}

		if err == nil {
			continue
		}

		switch {
		case errors.Is(err, io.EOF):
			if rest := framer.Flush(); rest != nil {
				h.processor.Process(TransportTCP, rest)
			}
			h.logger.Debug("TCP connection closed by peer", slog.String("remote", remote))
		case errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, net.ErrClosed):
			h.logger.Info("TCP connection interrupted by shutdown",
				slog.String("remote", remote),
				slog.Int("bufferedBytes", framer.Buffered()))
		default:
			h.logger.Error("failed to read from TCP connection",
				slog.String("remote", remote),
				slog.String("error", err.Error()))
		}

		return
	}
}
