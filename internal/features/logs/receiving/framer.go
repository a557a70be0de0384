package logs_receiving

import (
	"bytes"
	"strconv"
)

const (
	defaultMaxFrameSize = 64 * 1024
	maxOctetCountDigits = 6
)

type octetCountState int

const (
	octetCountComplete octetCountState = iota
	octetCountNeedMore
	octetCountInvalid
)

// Framer reassembles messages from a TCP byte stream. Frames starting with
// a digit use octet counting ("LEN SP MSG"), everything else is terminated
// by LF. A frame that reaches maxFrameSize without a terminator is cut at
// that size. A Framer belongs to one connection and is not safe for
// concurrent use.
type Framer struct {
	buf          []byte
	maxFrameSize int
}

func NewFramer(maxFrameSize int) *Framer {
	if maxFrameSize <= 0 {
		maxFrameSize = defaultMaxFrameSize
	}

	return &Framer{
		buf:          make([]byte, 0, 4096),
		maxFrameSize: maxFrameSize,
	}
}

// Push appends a chunk read from the stream and returns every frame it
// completed, in stream order. Returned frames do not alias the chunk.
func (f *Framer) Push(chunk []byte) [][]byte {
	f.buf = append(f.buf, chunk...)

	var frames [][]byte
	offset := 0

	for offset < len(f.buf) {
		pending := f.buf[offset:]

		if isDigit(pending[0]) {
			frame, consumed, state := f.nextOctetCountedFrame(pending)
			if state == octetCountNeedMore {
				break
			}

			if state == octetCountComplete {
				frames = append(frames, frame)
				offset += consumed
				continue
			}
		}

		frame, consumed, ok := f.nextLineFrame(pending)
		if !ok {
			break
		}

		offset += consumed
		if len(frame) > 0 {
			frames = append(frames, frame)
		}
	}

	f.buf = append(f.buf[:0], f.buf[offset:]...)

	return frames
}

// Flush returns what is left in the buffer once the peer has closed the
// stream, or nil.
func (f *Framer) Flush() []byte {
	rest := bytes.TrimRight(f.buf, "\r\n")
	f.buf = f.buf[:0]

	if len(rest) == 0 {
		return nil
	}

	return bytes.Clone(rest)
}

func (f *Framer) Buffered() int {
	return len(f.buf)
}

func (f *Framer) nextOctetCountedFrame(pending []byte) ([]byte, int, octetCountState) {
	space := bytes.IndexByte(pending, ' ')
	if space == -1 {
		if len(pending) > maxOctetCountDigits {
			return nil, 0, octetCountInvalid
		}

		for _, b := range pending {
			if !isDigit(b) {
				return nil, 0, octetCountInvalid
			}
		}

		return nil, 0, octetCountNeedMore
	}

	if space > maxOctetCountDigits {
		return nil, 0, octetCountInvalid
	}

	length, err := strconv.Atoi(string(pending[:space]))
	if err != nil || length <= 0 || length > f.maxFrameSize {
		return nil, 0, octetCountInvalid
	}

	end := space + 1 + length
	if len(pending) < end {
		return nil, 0, octetCountNeedMore
	}

	return bytes.Clone(pending[space+1 : end]), end, octetCountComplete
}

func (f *Framer) nextLineFrame(pending []byte) ([]byte, int, bool) {
	newline := bytes.IndexByte(pending, '\n')

	if newline == -1 || newline > f.maxFrameSize {
		if len(pending) < f.maxFrameSize {
			return nil, 0, false
		}

		return bytes.Clone(pending[:f.maxFrameSize]), f.maxFrameSize, true
	}

	frame := bytes.TrimSuffix(pending[:newline], []byte("\r"))

	return bytes.Clone(frame), newline + 1, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
