package linerev

import (
	"errors"
	"fmt"
	"io"
	"syscall"
)

// outputBuffer batches reversed lines into a fixed-capacity buffer and
// writes them to the destination in large, all-or-nothing flushes.
type outputBuffer struct {
	dst io.Writer
	buf []byte
	n   int
}

func newOutputBuffer(dst io.Writer, size int) *outputBuffer {
	return &outputBuffer{
		dst: dst,
		buf: make([]byte, size),
	}
}

// ensure flushes buffered bytes when fewer than n remain free. n must
// not exceed the buffer capacity.
func (b *outputBuffer) ensure(n int) error {
	if len(b.buf)-b.n < n {
		return b.flush()
	}

	return nil
}

// writeLine appends the byte-reversed line, then the delimiter when
// terminated is set. The caller must have reserved room via ensure.
func (b *outputBuffer) writeLine(line []byte, delim byte, terminated bool) {
	reverseInto(b.buf[b.n:], line)
	b.n += len(line)
	if terminated {
		b.buf[b.n] = delim
		b.n++
	}
}

// flush writes every buffered byte to the destination, looping over
// short writes and retrying writes interrupted by a signal. An empty
// buffer flushes trivially. Any write failure wraps ErrWrite.
func (b *outputBuffer) flush() error {
	off := 0
	for off < b.n {
		n, err := b.dst.Write(b.buf[off:b.n])
		off += n
		if err != nil && !errors.Is(err, syscall.EINTR) {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	b.n = 0
	return nil
}
