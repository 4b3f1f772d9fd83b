// Package input turns a raw terminal byte stream into game events.
package input

import (
	"bufio"
	"io"
)

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Drain returns every byte available right now without blocking.
// ok is false once the underlying reader has failed and the stream is empty.
func (s *Stream) Drain(buf []byte) (_ []byte, ok bool) {
	if s.closed {
		return buf, false
	}
	for {
		select {
		case b, open := <-s.ch:
			if !open {
				s.closed = true
				return buf, len(buf) > 0
			}
			buf = append(buf, b)
		default:
			return buf, true
		}
	}
}

// Closed reports whether the reader behind the stream has failed.
func (s *Stream) Closed() bool {
	return s.closed
}
