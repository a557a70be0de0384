package logs_receiving

import "fmt"

type Transport string

const (
	TransportTCP Transport = "tcp"
	TransportUDP Transport = "udp"
)

// BindFailure means a listening socket could not be acquired. It is fatal
// for startup.
type BindFailure struct {
	Transport Transport
	Address   string
	Err       error
}

func (e *BindFailure) Error() string {
	return fmt.Sprintf("failed to bind %s listener on %s: %v", e.Transport, e.Address, e.Err)
}

func (e *BindFailure) Unwrap() error {
	return e.Err
}

// TransportFailure means an accept or receive loop hit a non-recoverable
// socket error. Only that transport stops.
type TransportFailure struct {
	Transport Transport
	Err       error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("%s transport stopped: %v", e.Transport, e.Err)
}

func (e *TransportFailure) Unwrap() error {
	return e.Err
}
