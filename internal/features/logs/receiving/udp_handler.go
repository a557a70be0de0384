package logs_receiving

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

const (
	maxDatagramSize             = 64 * 1024
	maxConsecutiveReceiveErrors = 10
)

// DatagramHandler treats every received datagram as exactly one candidate
// message. Datagrams are processed one at a time, in arrival order.
type DatagramHandler struct {
	processor *MessageProcessor
	logger    *slog.Logger
	sleep     func(time.Duration)
}

func NewDatagramHandler(processor *MessageProcessor, logger *slog.Logger) *DatagramHandler {
	return &DatagramHandler{
		processor: processor,
		logger:    logger,
		sleep:     time.Sleep,
	}
}

// Serve blocks until the socket is closed. Transient receive errors are
// logged and retried with backoff; after maxConsecutiveReceiveErrors in a
// row the socket is considered broken and Serve returns.
func (h *DatagramHandler) Serve(conn net.PacketConn) error {
	buf := make([]byte, maxDatagramSize)
	backoff := newRetryBackoff()
	consecutiveErrors := 0

	for {
		n, addr, err := conn.ReadFrom(buf)
		if n > 0 {
			backoff.reset()
			consecutiveErrors = 0
			h.processor.Process(TransportUDP, buf[:n])
		}

		if err == nil {
			backoff.reset()
			consecutiveErrors = 0
			continue
		}

		if errors.Is(err, net.ErrClosed) {
			return err
		}

		consecutiveErrors++
		if consecutiveErrors >= maxConsecutiveReceiveErrors {
			return fmt.Errorf("%d consecutive receive errors: %w", consecutiveErrors, err)
		}

		remote := ""
		if addr != nil {
			remote = addr.String()
		}

		h.logger.Warn("failed to receive UDP datagram",
			slog.String("remote", remote),
			slog.String("error", err.Error()))

		h.sleep(backoff.next())
	}
}

type retryBackoff struct {
	current time.Duration
}

const (
	minRetryBackoff = 5 * time.Millisecond
	maxRetryBackoff = 1 * time.Second
)

func newRetryBackoff() *retryBackoff {
	return &retryBackoff{}
}

func (b *retryBackoff) next() time.Duration {
	if b.current == 0 {
		b.current = minRetryBackoff
	} else {
		b.current = min(b.current*2, maxRetryBackoff)
	}

	return b.current
}

func (b *retryBackoff) reset() {
	b.current = 0
}
