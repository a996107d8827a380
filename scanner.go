package linerev

import (
	"bytes"
	"errors"
	"io"
	"syscall"
)

// Scanner splits a byte stream into line fragments using a fixed,
// caller-sized chunk buffer. One fill of the buffer is one Read call on
// the source; a fragment is the longest run of buffered bytes up to the
// next delimiter or the end of the buffered data. Fragments alias the
// chunk buffer and are only valid until the next call to Next.
type Scanner struct {
	rd      io.Reader
	buf     []byte
	delim   byte
	pos     int
	dataLen int
	eof     bool
	err     error
}

func NewScanner(rd io.Reader, buf []byte, delim byte) *Scanner {
	return &Scanner{
		rd:    rd,
		buf:   buf,
		delim: delim,
	}
}

// Next returns the next fragment of the current line. terminated
// reports whether the fragment ends the line, i.e. a delimiter followed
// it in the stream; the delimiter itself is consumed but not included.
// At end of input Next returns io.EOF. Reads interrupted by a signal
// are retried, never surfaced.
func (s *Scanner) Next() (frag []byte, terminated bool, err error) {
	if s.pos == s.dataLen {
		if s.err != nil {
			return nil, false, s.err
		}
		if s.eof {
			return nil, false, io.EOF
		}

		if err := s.fill(); err != nil {
			return nil, false, err
		}
	}

	// bytes.IndexByte is the vectorized scan; on amd64 and arm64 it
	// compares a full register width per step.
	window := s.buf[s.pos:s.dataLen]
	i := bytes.IndexByte(window, s.delim)
	if i < 0 {
		s.pos = s.dataLen
		return window, false, nil
	}

	s.pos += i + 1
	return window[:i], true, nil
}

func (s *Scanner) fill() error {
	for {
		n, err := s.rd.Read(s.buf)
		if n > 0 {
			s.pos = 0
			s.dataLen = n
			switch {
			case err == io.EOF:
				s.eof = true
			case err != nil && !errors.Is(err, syscall.EINTR):
				// hold the error until the buffered bytes are
				// consumed
				s.err = err
			}
			return nil
		}

		if err == nil {
			continue
		}

		if err == io.EOF {
			s.eof = true
			return io.EOF
		}

		if errors.Is(err, syscall.EINTR) {
			continue
		}

		return err
	}
}
